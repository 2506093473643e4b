package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/VladPetriv/currency_converter/internal/models"
	"github.com/VladPetriv/currency_converter/pkg/money"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

func rateSnapshot(base string, rates map[string]float64) *models.RateSnapshot {
	snapshot := &models.RateSnapshot{
		Base:      base,
		Rates:     make(map[string]money.Money, len(rates)),
		UpdatedAt: time.Date(2024, 4, 5, 0, 0, 1, 0, time.UTC),
	}
	for code, rate := range rates {
		snapshot.Rates[code] = money.NewFromFloat(rate)
	}

	return snapshot
}

// funcRateProvider answers immediately and records requested base currencies.
type funcRateProvider struct {
	mu    sync.Mutex
	bases []string
	fn    func(base string) (*models.RateSnapshot, error)
}

func (p *funcRateProvider) GetRates(_ context.Context, base string) (*models.RateSnapshot, error) {
	p.mu.Lock()
	p.bases = append(p.bases, base)
	fn := p.fn
	p.mu.Unlock()

	return fn(base)
}

func (p *funcRateProvider) setFunc(fn func(base string) (*models.RateSnapshot, error)) {
	p.mu.Lock()
	p.fn = fn
	p.mu.Unlock()
}

func (p *funcRateProvider) requestedBases() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.bases...)
}

type rateResponse struct {
	snapshot *models.RateSnapshot
	err      error
}

type rateCall struct {
	base    string
	ctx     context.Context
	respond chan rateResponse
}

// blockingRateProvider holds every request until the test responds to it.
type blockingRateProvider struct {
	honorCancel bool
	calls       chan *rateCall
}

func newBlockingRateProvider(honorCancel bool) *blockingRateProvider {
	return &blockingRateProvider{
		honorCancel: honorCancel,
		calls:       make(chan *rateCall, 16),
	}
}

func (p *blockingRateProvider) GetRates(ctx context.Context, base string) (*models.RateSnapshot, error) {
	call := &rateCall{base: base, ctx: ctx, respond: make(chan rateResponse, 1)}
	p.calls <- call

	if p.honorCancel {
		select {
		case response := <-call.respond:
			return response.snapshot, response.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	response := <-call.respond
	return response.snapshot, response.err
}

func (p *blockingRateProvider) nextCall(t *testing.T) *rateCall {
	t.Helper()

	select {
	case call := <-p.calls:
		return call
	case <-time.After(waitTimeout):
		require.FailNow(t, "rate provider was not called")
		return nil
	}
}

func (p *blockingRateProvider) assertNoCall(t *testing.T) {
	t.Helper()

	select {
	case call := <-p.calls:
		require.FailNow(t, "unexpected rate provider call", "base: %s", call.base)
	default:
	}
}

// snapshotRecorder collects controller notifications.
type snapshotRecorder struct {
	mu        sync.Mutex
	snapshots []ControllerSnapshot
	ch        chan ControllerSnapshot
}

func newSnapshotRecorder() *snapshotRecorder {
	return &snapshotRecorder{ch: make(chan ControllerSnapshot, 64)}
}

func (r *snapshotRecorder) onChange(snapshot ControllerSnapshot) {
	r.mu.Lock()
	r.snapshots = append(r.snapshots, snapshot)
	r.mu.Unlock()

	r.ch <- snapshot
}

func (r *snapshotRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.snapshots)
}

func (r *snapshotRecorder) waitFor(t *testing.T, match func(ControllerSnapshot) bool) ControllerSnapshot {
	t.Helper()

	timeout := time.After(waitTimeout)
	for {
		select {
		case snapshot := <-r.ch:
			if match(snapshot) {
				return snapshot
			}
		case <-timeout:
			require.FailNow(t, "expected controller snapshot was not received")
			return ControllerSnapshot{}
		}
	}
}

func inState(state models.RequestState) func(ControllerSnapshot) bool {
	return func(s ControllerSnapshot) bool {
		return s.State == state
	}
}
