package worker

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/VladPetriv/currency_converter/pkg/logger"
)

type job[T any] struct {
	ID   string
	Data T
}

// Func is a function that handles a worker job.
type Func[T any] func(ctx context.Context, id string, data T) error

// Pool is a worker pool.
// Jobs that share a partition key are always handled by the same worker in the order they were added.
type Pool[T any] struct {
	logger       *logger.Logger
	workersCount int
	handlerFunc  Func[T]
	queues       []chan job[T]
	wg           *sync.WaitGroup
	dedup        map[string]struct{}
	mu           *sync.Mutex
	stopOnce     *sync.Once
}

// NewPool creates a new worker pool.
func NewPool[T any](logger *logger.Logger, workersCount, queueSize int, handlerFunc Func[T]) *Pool[T] {
	if workersCount < 1 {
		workersCount = 1
	}

	queues := make([]chan job[T], workersCount)
	for i := range queues {
		queues[i] = make(chan job[T], queueSize)
	}

	return &Pool[T]{
		logger:       logger,
		workersCount: workersCount,
		handlerFunc:  handlerFunc,
		queues:       queues,
		wg:           &sync.WaitGroup{},
		dedup:        make(map[string]struct{}),
		mu:           &sync.Mutex{},
		stopOnce:     &sync.Once{},
	}
}

// Start starts the number of workers that were passed in constructor.
func (p *Pool[T]) Start(ctx context.Context) {
	for i := range p.workersCount {
		p.wg.Add(1)
		go p.worker(ctx, p.queues[i])
	}
}

func (p *Pool[T]) worker(ctx context.Context, jobs chan job[T]) {
	defer p.wg.Done()

	logger := p.logger.With().Str("name", "Pool.worker").Logger()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Err(ctx.Err()).Msg("worker stopping due to context cancellation")
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}

			err := p.handlerFunc(ctx, job.ID, job.Data)
			if err != nil {
				logger.Error().Err(err).Str("jobID", job.ID).Msg("handle job")
			}
			p.mu.Lock()
			delete(p.dedup, job.ID)
			p.mu.Unlock()
		}
	}
}

// Stop stops the worker pool and waits for the running jobs.
func (p *Pool[T]) Stop() {
	p.stopOnce.Do(func() {
		for _, jobs := range p.queues {
			close(jobs)
		}
	})
	p.wg.Wait()
}

// AddJob adds a new job to the worker pool and blocks while the partition queue is full.
// A job with the same id as one that is still pending is ignored.
// It returns false when ctx is done before the job was queued.
func (p *Pool[T]) AddJob(ctx context.Context, id, partitionKey string, data T) bool {
	p.mu.Lock()
	_, ok := p.dedup[id]
	if ok {
		p.mu.Unlock()
		return true
	}
	p.dedup[id] = struct{}{}
	p.mu.Unlock()

	select {
	case p.queues[p.partition(partitionKey)] <- job[T]{ID: id, Data: data}:
		return true
	case <-ctx.Done():
		p.mu.Lock()
		delete(p.dedup, id)
		p.mu.Unlock()

		return false
	}
}

func (p *Pool[T]) partition(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(p.workersCount))
}
