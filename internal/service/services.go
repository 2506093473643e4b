package service

import (
	"context"

	"github.com/VladPetriv/currency_converter/internal/models"
)

// Services contains all Services.
type Services struct {
	Currency CurrencyService
	Event    EventService
}

// CurrencyService provides one-shot conversions for stateless clients.
type CurrencyService interface {
	// ListCurrencies returns all supported currencies.
	ListCurrencies() []models.Currency
	// Convert converts amount from source to target currency using the latest exchange rate.
	Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error)
}

// EventService provides functionality for receiving updates from messenger and reacting on them.
type EventService interface {
	// Listen is used to receive all updates from messenger and react for them until ctx is done.
	Listen(ctx context.Context)
	// Close closes all active converter sessions.
	Close()
}
