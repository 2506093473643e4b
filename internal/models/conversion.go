package models

import (
	"time"

	"github.com/VladPetriv/currency_converter/pkg/money"
)

// ConversionRequest represents the user input for a single conversion.
type ConversionRequest struct {
	Source string
	Target string
	Amount money.Money
}

// RateSnapshot represents a rate table received for a base currency.
// Rates hold the price of one unit of Base expressed in each currency code.
type RateSnapshot struct {
	Base      string
	Rates     map[string]money.Money
	UpdatedAt time.Time
}

// Rate returns the exchange rate for the target currency.
func (r *RateSnapshot) Rate(target string) (money.Money, bool) {
	if r == nil {
		return money.Zero, false
	}

	rate, ok := r.Rates[target]
	return rate, ok
}

// ConversionResult represents the converted amount and the rate it was derived from.
type ConversionResult struct {
	ConvertedAmount money.Money
	RateUsed        money.Money
	// UpdatedAt is the time the rate was published, zero for same currency conversions.
	UpdatedAt time.Time
}

// RequestState represents the state of a rate request.
type RequestState int

// List of available request states.
const (
	RequestStateIdle RequestState = iota
	RequestStateLoading
	RequestStateSuccess
	RequestStateError
)

func (s RequestState) String() string {
	switch s {
	case RequestStateIdle:
		return "idle"
	case RequestStateLoading:
		return "loading"
	case RequestStateSuccess:
		return "success"
	case RequestStateError:
		return "error"
	default:
		return "unknown"
	}
}
