package app

import (
	"context"
	"fmt"

	"github.com/VladPetriv/currency_converter/config"
	exchangerate "github.com/VladPetriv/currency_converter/internal/api/exchange_rate"
	"github.com/VladPetriv/currency_converter/internal/api/rest"
	"github.com/VladPetriv/currency_converter/internal/api/telegram"
	"github.com/VladPetriv/currency_converter/internal/service"
	"github.com/VladPetriv/currency_converter/pkg/logger"
)

// Run is used to start the application. It blocks until ctx is done or the HTTP server fails.
func Run(ctx context.Context, cfg *config.Config, logger *logger.Logger) error {
	rateAPI := exchangerate.New(exchangerate.Options{
		BaseURL: cfg.ExchangeRate.BaseURL,
		APIKey:  cfg.ExchangeRate.APIKey,
		Timeout: cfg.ExchangeRate.Timeout,
	})
	defer func() {
		err := rateAPI.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("close exchange rate api")
		}
	}()

	apis := service.APIs{
		RateProvider: rateAPI,
	}

	services := service.Services{
		Currency: service.NewCurrency(logger, apis),
	}

	if cfg.Telegram.Enabled {
		messenger, err := telegram.New(telegram.Options{
			Token:         cfg.Telegram.BotToken,
			UpdatesType:   cfg.Telegram.UpdatesType,
			ServerAddress: cfg.Telegram.ServerAddress,
			WebhookURL:    cfg.Telegram.WebhookURL,
		})
		if err != nil {
			return fmt.Errorf("create telegram messenger: %w", err)
		}
		defer func() {
			err := messenger.Close()
			if err != nil {
				logger.Warn().Err(err).Msg("close telegram messenger")
			}
		}()
		apis.Messenger = messenger

		services.Event = service.NewEvent(service.EventOptions{
			Logger:       logger,
			APIs:         apis,
			WorkersCount: cfg.Worker.Count,
			QueueSize:    cfg.Worker.QueueSize,
		})
	}

	server := rest.New(rest.Options{
		Logger:          logger,
		CurrencyService: services.Currency,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.HTTP.Address).Msg("starting http server")
		serverErrors <- server.ListenAndServe(cfg.HTTP.Address)
	}()

	listenCtx, stopListen := context.WithCancel(ctx)
	defer stopListen()

	listenDone := make(chan struct{})
	if services.Event != nil {
		go func() {
			defer close(listenDone)
			services.Event.Listen(listenCtx)
		}()
	} else {
		close(listenDone)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("http server stopped")
		runErr = fmt.Errorf("serve http: %w", err)
	}

	stopListen()
	<-listenDone
	if services.Event != nil {
		services.Event.Close()
	}

	err := server.Shutdown()
	if err != nil {
		logger.Error().Err(err).Msg("shutdown http server")
		if runErr == nil {
			runErr = fmt.Errorf("shutdown http server: %w", err)
		}
	}

	return runErr
}
