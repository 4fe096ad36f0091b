package assert

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/domspec/packages/correlate"
	"github.com/abdul-hamid-achik/domspec/packages/driver"
	"github.com/abdul-hamid-achik/domspec/packages/queue"
	"github.com/abdul-hamid-achik/domspec/packages/report"
	"github.com/abdul-hamid-achik/domspec/packages/stats"
)

type mode int8

const (
	chaining mode = iota
	querying
)

type frame struct {
	mode     mode
	selector string
}

// Asserter owns one run's worth of assertion state: the action
// queue, the correlation machinery, the report sink, and the stack
// of open chain and query blocks.
type Asserter struct {
	drv       driver.Driver
	queue     *queue.Queue
	registry  *correlate.Registry
	router    *correlate.Router
	counters  *correlate.Counters
	proceeded *correlate.ProceededSet
	sink      report.Sink
	log       *zap.Logger
	recorder  *stats.Recorder
	strict    bool
	rateLimit float64

	mu     sync.Mutex
	frames []frame
}

type Option func(*Asserter)

// WithSink routes report events somewhere other than the void.
func WithSink(s report.Sink) Option {
	return func(a *Asserter) {
		a.sink = s
	}
}

// WithLogger enables debug traces of issuance and correlation.
func WithLogger(log *zap.Logger) Option {
	return func(a *Asserter) {
		a.log = log
	}
}

// WithRate caps command issuance at n per second.
func WithRate(n float64) Option {
	return func(a *Asserter) {
		a.rateLimit = n
	}
}

// WithStats records issue-to-answer latency per check kind.
func WithStats(r *stats.Recorder) Option {
	return func(a *Asserter) {
		a.recorder = r
	}
}

// WithStrictResolution makes Run wait for each check's answer before
// issuing the next command, trading throughput for reports that
// arrive in declaration order.
func WithStrictResolution() Option {
	return func(a *Asserter) {
		a.strict = true
	}
}

// New builds an Asserter over a driver. Drivers that deliver answers
// in-process are wired straight into the correlation router.
func New(drv driver.Driver, opts ...Option) *Asserter {
	a := &Asserter{
		drv:       drv,
		sink:      report.Discard,
		log:       zap.NewNop(),
		counters:  &correlate.Counters{},
		proceeded: correlate.NewProceededSet(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.registry = correlate.NewRegistry(a.counters, a.sink, correlate.WithLogger(a.log))
	a.router = correlate.NewRouter(correlate.RouterWithLogger(a.log))
	a.queue = queue.New(queue.WithRate(a.rateLimit), queue.WithLogger(a.log))

	if em, ok := drv.(driver.Emitter); ok {
		em.SetEmit(a.Dispatch)
	}
	return a
}

// Dispatch feeds one driver message into the correlation router.
// Remote transports call this from their read loop.
func (a *Asserter) Dispatch(msg driver.Message) {
	a.router.Dispatch(msg)
}

// Run issues every declared check, strictly in declaration order.
// The returned error is always infrastructure (a command that could
// not be issued, a cancelled context); assertion failures are
// reported through the sink and counted, never returned.
func (a *Asserter) Run(ctx context.Context) error {
	return a.queue.Run(ctx)
}

// Settle blocks until every issued check has resolved or the
// context ends. Unanswered checks block it forever; cancelling is
// the caller's only way out of that.
func (a *Asserter) Settle(ctx context.Context) error {
	return a.router.Quiesce(ctx)
}

// Pending returns the number of listeners still awaiting an answer.
func (a *Asserter) Pending() int {
	return a.router.Pending()
}

// Totals returns resolved expectations so far and how many failed.
func (a *Asserter) Totals() (expectations, failures int) {
	return a.counters.Totals()
}

// Chain opens a block of checks for fluent composition. Close it
// with End.
func (a *Asserter) Chain() *Asserter {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frames = append(a.frames, frame{mode: chaining})
	return a
}

// Query opens a block scoped to one selector. Checks on the
// returned handle omit the selector argument until End.
func (a *Asserter) Query(selector string) *Query {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frames = append(a.frames, frame{mode: querying, selector: selector})
	return &Query{a: a, selector: selector}
}

// End closes the innermost open block. Closing a query block drops
// its selector scope. With nothing open it is a no-op, not an error.
func (a *Asserter) End() *Asserter {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.frames) == 0 {
		return a
	}
	a.frames = a.frames[:len(a.frames)-1]
	return a
}

// ActiveSelector returns the selector scope currently in effect: the
// top of the stack must be an open query block. A chain opened
// inside a query shadows it until that chain ends.
func (a *Asserter) ActiveSelector() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n := len(a.frames); n > 0 && a.frames[n-1].mode == querying {
		return a.frames[n-1].selector, true
	}
	return "", false
}

// declare registers a check's listener and enqueues the thunk that
// will issue its command. The listener goes live at declaration time,
// before anything is sent, so an answer can never beat its listener
// and later fluent attachments line up behind the check's own
// verdict in the report stream.
func (a *Asserter) declare(c *correlate.Check, issue func(ctx context.Context, id string) error) {
	h := a.registry.Listener(c)

	var issuedAt atomic.Int64
	if a.recorder != nil {
		inner := h
		h = func(msg driver.Message) bool {
			ok := inner(msg)
			if ok {
				if t := issuedAt.Load(); t != 0 {
					a.recorder.Record(c.Key, time.Since(time.Unix(0, t)))
				}
			}
			return ok
		}
	}
	var done chan struct{}
	if a.strict {
		done = make(chan struct{})
		inner := h
		h = func(msg driver.Message) bool {
			ok := inner(msg)
			if ok {
				close(done)
			}
			return ok
		}
	}
	a.router.Observe(c.ID, h)

	a.queue.Enqueue(func(ctx context.Context) error {
		issuedAt.Store(time.Now().UnixNano())
		if err := issue(ctx, c.ID); err != nil {
			return fmt.Errorf("issue %s: %w", c.Type, err)
		}
		a.log.Debug("check issued",
			zap.String("key", c.Key),
			zap.String("type", c.Type),
			zap.String("id", c.ID))

		if a.strict {
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
}
