package rest

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/VladPetriv/currency_converter/internal/models"
	"github.com/VladPetriv/currency_converter/internal/service"
	"github.com/VladPetriv/currency_converter/pkg/errs"
	"github.com/VladPetriv/currency_converter/pkg/logger"
	"github.com/VladPetriv/currency_converter/pkg/typecast"
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// Server exposes one-shot conversions over HTTP.
type Server struct {
	logger   *logger.Logger
	currency service.CurrencyService
	server   *fasthttp.Server
}

// Options represents input options for new instance of server.
type Options struct {
	Logger          *logger.Logger
	CurrencyService service.CurrencyService
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// New returns new instance of server.
func New(opts Options) *Server {
	s := &Server{
		logger:   opts.Logger,
		currency: opts.CurrencyService,
	}

	s.server = &fasthttp.Server{
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}

	return s
}

// Handler returns the request handler with all routes registered.
func (s *Server) Handler() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/healthz", s.health)
	r.GET("/api/v1/currencies", s.listCurrencies)
	r.GET("/api/v1/convert", s.convert)

	return r.Handler
}

// ListenAndServe serves requests on the given address until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	return s.server.ListenAndServe(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

type convertResponse struct {
	From            string     `json:"from"`
	To              string     `json:"to"`
	Amount          string     `json:"amount"`
	Rate            string     `json:"rate"`
	ConvertedAmount string     `json:"convertedAmount"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listCurrencies(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, s.currency.ListCurrencies())
}

func (s *Server) convert(ctx *fasthttp.RequestCtx) {
	logger := s.logger.With().Str("name", "Server.convert").Logger()

	args := ctx.QueryArgs()
	from := string(args.Peek("from"))
	to := string(args.Peek("to"))

	amount, err := service.ParseAmount(string(args.Peek("amount")))
	if err != nil {
		s.writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: service.ErrorMessage(err)})
		return
	}

	result, err := s.currency.Convert(ctx, models.ConversionRequest{
		Source: from,
		Target: to,
		Amount: amount,
	})
	if err != nil {
		status := statusFromError(err)
		if status >= fasthttp.StatusInternalServerError {
			logger.Error().Err(err).Msg("convert currency")
		}

		s.writeJSON(ctx, status, errorResponse{Error: service.ErrorMessage(err)})
		return
	}

	response := convertResponse{
		From:            from,
		To:              to,
		Amount:          amount.String(),
		Rate:            result.RateUsed.String(),
		ConvertedAmount: result.ConvertedAmount.StringFixed(),
	}
	if !result.UpdatedAt.IsZero() {
		response.UpdatedAt = typecast.ToPtr(result.UpdatedAt)
	}

	s.writeJSON(ctx, fasthttp.StatusOK, response)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrRateUnavailable), errors.Is(err, service.ErrMalformedResponse):
		return fasthttp.StatusBadGateway
	case errs.IsExpected(err):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusBadGateway
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal response body")
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
