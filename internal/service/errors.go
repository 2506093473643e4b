package service

import (
	"errors"

	"github.com/VladPetriv/currency_converter/pkg/errs"
)

var (
	// ErrNetwork is returned when rate request did not complete successfully.
	ErrNetwork = errors.New("exchange rate request failed")
	// ErrMalformedResponse is returned when rate response has no usable rate table.
	ErrMalformedResponse = errors.New("malformed exchange rate response")
	// ErrRateUnavailable is returned when rate table has no entry for the target currency.
	ErrRateUnavailable = errs.New("rate unavailable for target currency")
	// ErrInvalidAmount is returned when amount input is not a number.
	ErrInvalidAmount = errs.New("amount must be a number")
)

// User facing messages.
const (
	networkErrorMessage   = "Failed to fetch exchange rates. Please try again."
	malformedErrorMessage = "Received an invalid response from the exchange rate service."
)

// ErrorMessage converts an error into a message shown in the result panel.
func ErrorMessage(err error) string {
	switch {
	case errs.IsExpected(err):
		var expected *errs.Err
		errors.As(err, &expected)
		return expected.Message
	case errors.Is(err, ErrMalformedResponse):
		return malformedErrorMessage
	default:
		return networkErrorMessage
	}
}
