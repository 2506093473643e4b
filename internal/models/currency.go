package models

import (
	"golang.org/x/text/currency"
)

// Currency represents currency model which contains currency name, code and symbol
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// GetID returns currency code.
func (c Currency) GetID() string {
	return c.Code
}

// GetName returns a label used for currency selectors.
func (c Currency) GetName() string {
	return c.Code
}

// Default conversion pair used for a fresh converter.
const (
	DefaultSourceCurrency = "USD"
	DefaultTargetCurrency = "EUR"
)

// SupportedCurrencies is the fixed set of currencies the converter works with.
var SupportedCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "SEK", Name: "Swedish Krona", Symbol: "kr"},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$"},
}

// GetCurrency returns supported currency by its code.
// Codes are case-sensitive and must be upper case ISO 4217 codes.
func GetCurrency(code string) (Currency, bool) {
	unit, err := currency.ParseISO(code)
	if err != nil || unit.String() != code {
		return Currency{}, false
	}

	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}

	return Currency{}, false
}

// IsSupportedCurrency checks if currency code belongs to supported currencies.
func IsSupportedCurrency(code string) bool {
	_, ok := GetCurrency(code)
	return ok
}
