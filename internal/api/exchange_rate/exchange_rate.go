package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/VladPetriv/currency_converter/internal/models"
	"github.com/VladPetriv/currency_converter/internal/service"
	"github.com/VladPetriv/currency_converter/pkg/money"
	"resty.dev/v3"
)

type exchangeRate struct {
	httpClient *resty.Client
	apiKey     string
}

var _ service.RateProvider = (*exchangeRate)(nil)

// Options represents options that required for creating new instance of exchange rate API.
type Options struct {
	// BaseURL is the root of rate endpoints, e.g. https://api.exchangerate-api.com/v4/latest
	// for the open variant or https://v6.exchangerate-api.com/v6 for the keyed one.
	BaseURL string
	// APIKey switches the client to the keyed variant, the key is embedded in the request path.
	APIKey  string
	Timeout time.Duration
}

// New creates a new instance of exchange rate api.
func New(opts Options) *exchangeRate {
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout)

	return &exchangeRate{
		httpClient: httpClient,
		apiKey:     opts.APIKey,
	}
}

func (e *exchangeRate) GetRates(ctx context.Context, baseCurrency string) (*models.RateSnapshot, error) {
	var result latestRatesResponse

	request := e.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetPathParam("code", baseCurrency)

	path := "/{code}"
	if e.apiKey != "" {
		path = "/{key}/latest/{code}"
		request.SetPathParam("key", e.apiKey)
	}

	response, err := request.Get(path)
	if err != nil {
		if isDecodeError(err) {
			return nil, fmt.Errorf("%w: decode get rates response: %w", service.ErrMalformedResponse, err)
		}
		return nil, fmt.Errorf("%w: send get rates request: %w", service.ErrNetwork, err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: could not get rates(statusCode: %d, body:%s)", service.ErrNetwork, response.StatusCode(), response.String())
	}
	if result.Result != "" && result.Result != "success" {
		return nil, fmt.Errorf("%w: rates request ended with result %q(error-type: %s)", service.ErrNetwork, result.Result, result.ErrorType)
	}

	table := result.rateTable()
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: response has no rate table", service.ErrMalformedResponse)
	}

	rates := make(map[string]money.Money, len(table))
	for code, rawRate := range table {
		rate, err := money.NewFromString(rawRate.String())
		if err != nil {
			return nil, fmt.Errorf("%w: parse rate for %s: %w", service.ErrMalformedResponse, code, err)
		}
		rates[code] = rate
	}

	snapshot := &models.RateSnapshot{
		Base:  result.baseCurrency(baseCurrency),
		Rates: rates,
	}
	if updatedAt := result.updatedAtUnix(); updatedAt != 0 {
		snapshot.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	}

	return snapshot, nil
}

// Close releases idle connections of the underlying http client.
func (e *exchangeRate) Close() error {
	return e.httpClient.Close()
}

func isDecodeError(err error) bool {
	var (
		syntaxErr    *json.SyntaxError
		unmarshalErr *json.UnmarshalTypeError
	)

	return errors.As(err, &syntaxErr) ||
		errors.As(err, &unmarshalErr) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
