package service

import (
	"context"
	"fmt"

	"github.com/VladPetriv/currency_converter/internal/models"
	"github.com/VladPetriv/currency_converter/pkg/errs"
	"github.com/VladPetriv/currency_converter/pkg/logger"
	"github.com/VladPetriv/currency_converter/pkg/money"
)

type currencyService struct {
	logger *logger.Logger
	apis   APIs
}

var _ CurrencyService = (*currencyService)(nil)

// NewCurrency returns new instance of currency service.
func NewCurrency(logger *logger.Logger, apis APIs) *currencyService {
	return &currencyService{
		logger: logger,
		apis:   apis,
	}
}

func (c *currencyService) ListCurrencies() []models.Currency {
	currencies := make([]models.Currency, len(models.SupportedCurrencies))
	copy(currencies, models.SupportedCurrencies)

	return currencies
}

func (c *currencyService) Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error) {
	logger := c.logger.With().Str("name", "currencyService.Convert").Logger()
	logger.Debug().Any("req", req).Msg("got args")

	for _, code := range []string{req.Source, req.Target} {
		if !models.IsSupportedCurrency(code) {
			logger.Info().Str("code", code).Msg("unsupported currency")
			return nil, errs.Newf("unsupported currency: %s", code)
		}
	}

	amount := clampAmount(req.Amount)

	if req.Source == req.Target {
		return &models.ConversionResult{
			ConvertedAmount: recompute(amount, money.One),
			RateUsed:        money.One,
		}, nil
	}

	snapshot, err := c.apis.RateProvider.GetRates(ctx, req.Source)
	if err != nil {
		logger.Error().Err(err).Msg("get rates through rate provider")
		return nil, fmt.Errorf("get rates through rate provider: %w", err)
	}

	rate, ok := snapshot.Rate(req.Target)
	if !ok {
		logger.Info().Str("target", req.Target).Msg(ErrRateUnavailable.Error())
		return nil, ErrRateUnavailable
	}
	logger.Debug().Str("rate", rate.String()).Msg("got exchange rate")

	return &models.ConversionResult{
		ConvertedAmount: recompute(amount, rate),
		RateUsed:        rate,
		UpdatedAt:       snapshot.UpdatedAt,
	}, nil
}
