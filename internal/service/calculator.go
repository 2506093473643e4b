package service

import (
	"regexp"
	"strings"

	"github.com/VladPetriv/currency_converter/pkg/money"
)

const convertedAmountPlaces = 2

// amountPattern accepts plain decimal notation only, with bounded integer and fraction parts.
var amountPattern = regexp.MustCompile(`^-?\d{1,15}(\.\d{1,8})?$`)

// recompute returns amount converted with the rate and rounded to 2 decimal places.
// Non-positive amounts are converted to zero.
func recompute(amount, rate money.Money) money.Money {
	if !amount.IsPositive() {
		return money.Zero
	}

	converted := amount
	converted.Mul(rate)

	return converted.Round(convertedAmountPlaces)
}

// clampAmount replaces negative amounts with zero.
func clampAmount(amount money.Money) money.Money {
	if amount.IsNegative() {
		return money.Zero
	}

	return amount
}

// ParseAmount parses user input into a non-negative amount.
// Empty input is treated as zero, negative input is clamped to zero.
// Exponent notation and values with more than 15 integer or 8 fraction digits are rejected.
func ParseAmount(input string) (money.Money, error) {
	input = strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	if input == "" {
		return money.Zero, nil
	}
	if !amountPattern.MatchString(input) {
		return money.Zero, ErrInvalidAmount
	}

	amount, err := money.NewFromString(input)
	if err != nil {
		return money.Zero, ErrInvalidAmount
	}

	return clampAmount(amount), nil
}
