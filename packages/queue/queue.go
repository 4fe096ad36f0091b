// Package queue provides the ordered action queue behind the
// assertion surface. Declaring a check enqueues a thunk; running the
// queue issues every pending command strictly in declaration order.
package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Thunk is one queued action. Its whole job is to issue a driver
// command and subscribe the matching listener; it settles by
// returning, never by waiting for the answer. An error means the
// command could not be issued at all.
type Thunk func(ctx context.Context) error

// Queue drains thunks in FIFO order. Issuance order is guaranteed;
// resolution order is not, answers land whenever the driver gets
// around to them.
type Queue struct {
	mu      sync.Mutex
	thunks  []Thunk
	limiter *rate.Limiter
	log     *zap.Logger
}

type Option func(*Queue)

// WithRate caps issuance at n commands per second. Zero or negative
// leaves the queue unpaced.
func WithRate(n float64) Option {
	return func(q *Queue) {
		if n > 0 {
			q.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithLogger sets the logger for issuance traces.
func WithLogger(log *zap.Logger) Option {
	return func(q *Queue) {
		q.log = log
	}
}

func New(opts ...Option) *Queue {
	q := &Queue{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends a thunk. Safe to call while Run is draining; the
// thunk joins the tail.
func (q *Queue) Enqueue(t Thunk) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.thunks = append(q.thunks, t)
}

// Len returns the number of thunks not yet run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.thunks)
}

// Run drains the queue. Each thunk settles before the next starts.
// The first thunk error stops the drain and is returned; that is an
// infrastructure failure (driver unreachable, connection gone), and
// assertion outcomes never travel this path. Thunks left behind
// after an error stay queued.
func (q *Queue) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		q.mu.Lock()
		if len(q.thunks) == 0 {
			q.mu.Unlock()
			return nil
		}
		t := q.thunks[0]
		q.thunks[0] = nil
		q.thunks = q.thunks[1:]
		remaining := len(q.thunks)
		q.mu.Unlock()

		if q.limiter != nil {
			if err := q.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		if err := t(ctx); err != nil {
			return err
		}
		q.log.Debug("action settled", zap.Int("remaining", remaining))
	}
}
