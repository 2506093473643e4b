package service

import (
	"context"
	"sync"
	"time"

	"github.com/VladPetriv/currency_converter/internal/models"
	"github.com/VladPetriv/currency_converter/pkg/errs"
	"github.com/VladPetriv/currency_converter/pkg/logger"
	"github.com/VladPetriv/currency_converter/pkg/money"
	"github.com/VladPetriv/currency_converter/pkg/typecast"
	"github.com/google/uuid"
)

// ControllerSnapshot represents everything the presentation layer needs to render the converter.
type ControllerSnapshot struct {
	Source string
	Target string
	Amount money.Money

	State        models.RequestState
	ErrorMessage string
	// Result is set only when State is models.RequestStateSuccess.
	Result *models.ConversionResult
}

// Controller fetches exchange rates for the selected currency pair and derives the converted amount.
//
// Operations and fetch completions are serialized, at most one fetch is current at a time
// and only the response of the latest fetch is ever applied.
type Controller struct {
	logger       *logger.Logger
	rateProvider RateProvider
	onChange     func(ControllerSnapshot)

	mu       sync.Mutex
	source   string
	target   string
	amount   money.Money
	state    models.RequestState
	errMsg   string
	snapshot *models.RateSnapshot
	rateUsed *money.Money

	seq         uint64
	cancelFetch context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
	wg          sync.WaitGroup
}

// ControllerOptions represents input options for new instance of controller.
type ControllerOptions struct {
	Logger       *logger.Logger
	RateProvider RateProvider
	// Source and Target default to models.DefaultSourceCurrency and models.DefaultTargetCurrency.
	Source string
	Target string
	Amount money.Money
	// OnChange is called after every state change with the controller lock held,
	// it must not call back into the controller.
	OnChange func(ControllerSnapshot)
}

// NewController returns new instance of controller in idle state.
// Call Refresh to load the rate for the initial pair.
func NewController(opts ControllerOptions) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	source, target := opts.Source, opts.Target
	if source == "" {
		source = models.DefaultSourceCurrency
	}
	if target == "" {
		target = models.DefaultTargetCurrency
	}

	onChange := opts.OnChange
	if onChange == nil {
		onChange = func(ControllerSnapshot) {}
	}

	return &Controller{
		logger:       opts.Logger,
		rateProvider: opts.RateProvider,
		onChange:     onChange,
		source:       source,
		target:       target,
		amount:       clampAmount(opts.Amount),
		state:        models.RequestStateIdle,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Snapshot returns the current controller state.
func (c *Controller) Snapshot() ControllerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Refresh fetches the rate for the current pair.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshRateLocked()
}

// SetSource selects the currency to convert from.
func (c *Controller) SetSource(code string) error {
	if !models.IsSupportedCurrency(code) {
		return errs.Newf("unsupported currency: %s", code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setPairLocked(code, c.target)

	return nil
}

// SetTarget selects the currency to convert to.
func (c *Controller) SetTarget(code string) error {
	if !models.IsSupportedCurrency(code) {
		return errs.Newf("unsupported currency: %s", code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setPairLocked(c.source, code)

	return nil
}

// SetPair selects both currencies at once and fetches the rate if the pair changed.
func (c *Controller) SetPair(source, target string) error {
	for _, code := range []string{source, target} {
		if !models.IsSupportedCurrency(code) {
			return errs.Newf("unsupported currency: %s", code)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setPairLocked(source, target)

	return nil
}

func (c *Controller) setPairLocked(source, target string) {
	if c.source == source && c.target == target {
		return
	}

	c.source, c.target = source, target
	c.refreshRateLocked()
}

// Swap exchanges source and target currencies and fetches the rate for the new pair once.
func (c *Controller) Swap() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.source, c.target = c.target, c.source
	c.refreshRateLocked()
}

// SetAmount changes the amount to convert. It never triggers a new fetch.
// Negative amounts are clamped to zero.
func (c *Controller) SetAmount(amount money.Money) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.amount = clampAmount(amount)
	if c.closed {
		return
	}

	c.onChange(c.snapshotLocked())
}

// Close cancels the outstanding fetch and waits for it to return.
// No notifications are delivered after Close.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancel()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Controller) refreshRateLocked() {
	if c.closed {
		return
	}

	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	c.seq++

	c.snapshot = nil
	c.errMsg = ""

	if c.source == c.target {
		c.rateUsed = typecast.ToPtr(money.One)
		c.state = models.RequestStateSuccess
		c.onChange(c.snapshotLocked())
		return
	}

	c.rateUsed = nil
	c.state = models.RequestStateLoading
	c.onChange(c.snapshotLocked())

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelFetch = cancel

	c.wg.Add(1)
	go c.fetch(ctx, c.seq, c.source, c.target)
}

func (c *Controller) fetch(ctx context.Context, seq uint64, source, target string) {
	defer c.wg.Done()

	logger := c.logger.With().
		Str("name", "Controller.fetch").
		Str("requestID", uuid.NewString()).
		Uint64("seq", seq).
		Str("source", source).
		Str("target", target).
		Logger()
	logger.Debug().Msg("fetching exchange rate")

	startedAt := time.Now()
	snapshot, err := c.rateProvider.GetRates(ctx, source)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq {
		logger.Debug().Uint64("currentSeq", c.seq).Msg("discarded stale exchange rate response")
		return
	}
	c.cancelFetch()
	c.cancelFetch = nil

	if err != nil {
		logger.Error().Err(err).Dur("took", time.Since(startedAt)).Msg("get rates through rate provider")
		c.failLocked(err)
		return
	}

	rate, ok := snapshot.Rate(target)
	if !ok {
		logger.Info().Msg(ErrRateUnavailable.Error())
		c.failLocked(ErrRateUnavailable)
		return
	}

	c.snapshot = snapshot
	c.rateUsed = typecast.ToPtr(rate)
	c.state = models.RequestStateSuccess
	logger.Debug().Str("rate", rate.String()).Dur("took", time.Since(startedAt)).Msg("got exchange rate")

	c.onChange(c.snapshotLocked())
}

func (c *Controller) failLocked(err error) {
	c.snapshot = nil
	c.rateUsed = nil
	c.state = models.RequestStateError
	c.errMsg = ErrorMessage(err)

	c.onChange(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() ControllerSnapshot {
	snapshot := ControllerSnapshot{
		Source:       c.source,
		Target:       c.target,
		Amount:       c.amount,
		State:        c.state,
		ErrorMessage: c.errMsg,
	}

	if c.state == models.RequestStateSuccess && c.rateUsed != nil {
		result := &models.ConversionResult{
			ConvertedAmount: recompute(c.amount, *c.rateUsed),
			RateUsed:        *c.rateUsed,
		}
		if c.snapshot != nil {
			result.UpdatedAt = c.snapshot.UpdatedAt
		}
		snapshot.Result = result
	}

	return snapshot
}
