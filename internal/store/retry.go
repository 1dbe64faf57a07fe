package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/shared"
	"golang.org/x/time/rate"
)

// RetryQueue retries failed durable writes in the background, paced by a
// [rate.Limiter]. Opt-in: the core's default durability contract stays
// best-effort fire-and-forget.
//
// One pending value per key; enqueueing again supersedes the old value, so a
// retried write always carries the newest state.
type RetryQueue struct {
	adapter Adapter
	limiter *rate.Limiter
	logger  *log.Logger

	mu      sync.Mutex
	pending map[string]json.RawMessage

	wake chan struct{}
	wg   sync.WaitGroup
}

// NewRetryQueue creates a RetryQueue that retries writes through adapter at
// most once per interval, with the given burst allowance.
func NewRetryQueue(adapter Adapter, logger *log.Logger, interval time.Duration, burst int) *RetryQueue {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if burst < 1 {
		burst = 1
	}

	return &RetryQueue{
		adapter: adapter,
		limiter: rate.NewLimiter(rate.Every(interval), burst),
		logger:  logger,
		pending: make(map[string]json.RawMessage),
		wake:    make(chan struct{}, 1),
	}
}

// Enqueue records a failed write for retry. The newest value per key wins.
func (q *RetryQueue) Enqueue(key string, value json.RawMessage) {
	q.mu.Lock()
	q.pending[key] = value
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of keys awaiting retry.
func (q *RetryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Start launches the background retry loop. It runs until ctx is cancelled;
// Wait blocks until the loop has drained.
func (q *RetryQueue) Start(ctx context.Context) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.run(ctx)
	}()
}

// Wait blocks until the retry loop started by Start has exited.
func (q *RetryQueue) Wait() {
	q.wg.Wait()
}

func (q *RetryQueue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}

		for {
			key, value, ok := q.next()
			if !ok {
				break
			}

			if err := q.limiter.Wait(ctx); err != nil {
				q.requeue(key, value)
				return
			}

			if err := q.adapter.Write(key, value); err != nil {
				q.logger.Warn("retry write failed, requeueing", "key", key, "err", err)
				q.requeue(key, value)
				continue
			}

			q.logger.Debug("retried durable write", "key", key)
		}
	}
}

// next pops an arbitrary pending entry.
func (q *RetryQueue) next() (string, json.RawMessage, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for key, value := range q.pending {
		delete(q.pending, key)
		return key, value, true
	}

	return "", nil, false
}

// requeue restores an entry unless a newer value arrived while it was in flight.
func (q *RetryQueue) requeue(key string, value json.RawMessage) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.pending[key]; !ok {
		q.pending[key] = value
	}
}
