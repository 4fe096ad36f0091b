package correlate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/domspec/packages/driver"
)

// Router fans driver messages out to the handlers awaiting them.
// Handlers are keyed by correlation identifier; one identifier may
// carry several (the check's own listener plus any attachments).
// A handler that consumes a message is removed immediately, so each
// fires at most once.
type Router struct {
	// dispatchMu serializes Dispatch so a message delivered twice
	// cannot run the same handler twice.
	dispatchMu sync.Mutex

	mu      sync.Mutex
	table   map[string][]*entry
	count   int
	waiters []chan struct{}
	log     *zap.Logger
}

type entry struct {
	h Handler
}

type RouterOption func(*Router)

// RouterWithLogger sets the logger for dispatch traces.
func RouterWithLogger(log *zap.Logger) RouterOption {
	return func(r *Router) {
		r.log = log
	}
}

func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		table: make(map[string][]*entry),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Observe registers a handler under an identifier. Safe to call
// while a dispatch is in flight; the handler sees only messages
// dispatched after registration.
func (r *Router) Observe(id string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[id] = append(r.table[id], &entry{h: h})
	r.count++
}

// Dispatch routes one message to every handler registered under its
// identifier and removes the ones that consumed it. It returns how
// many consumed; zero means the message was dropped.
func (r *Router) Dispatch(msg driver.Message) int {
	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	r.mu.Lock()
	snapshot := make([]*entry, len(r.table[msg.ID]))
	copy(snapshot, r.table[msg.ID])
	r.mu.Unlock()

	if len(snapshot) == 0 {
		r.log.Debug("message matched no listener",
			zap.String("key", msg.Key),
			zap.String("id", msg.ID))
		return 0
	}

	consumed := make(map[*entry]bool, len(snapshot))
	for _, e := range snapshot {
		if e.h(msg) {
			consumed[e] = true
		}
	}
	if len(consumed) == 0 {
		r.log.Debug("message consumed by no listener",
			zap.String("key", msg.Key),
			zap.String("id", msg.ID))
		return 0
	}

	r.mu.Lock()
	live := r.table[msg.ID][:0]
	for _, e := range r.table[msg.ID] {
		if !consumed[e] {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		delete(r.table, msg.ID)
	} else {
		r.table[msg.ID] = live
	}
	r.count -= len(consumed)
	if r.count == 0 {
		for _, ch := range r.waiters {
			close(ch)
		}
		r.waiters = nil
	}
	r.mu.Unlock()

	return len(consumed)
}

// Pending returns the number of registered handlers still waiting
// for their message.
func (r *Router) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Quiesce blocks until every registered handler has fired, or the
// context ends. A check whose answer never comes blocks Quiesce
// forever unless the caller cancels.
func (r *Router) Quiesce(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.count == 0 {
			r.mu.Unlock()
			return nil
		}
		ch := make(chan struct{})
		r.waiters = append(r.waiters, ch)
		r.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
