package driver

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Command records one issued driver command: the semantic key, the
// addressing argument (selector, cookie name, or empty for page-wide
// checks), and the correlation identifier it carried.
type Command struct {
	Key     string
	Subject string
	ID      string
}

// Replay is a scripted driver. Canned values are stubbed per
// (key, subject) pair and consumed in FIFO order; each issued command
// is answered through the emit hook, synchronously by default or on
// Flush when deferred answers are enabled. Commands with no remaining
// canned value are recorded and never answered, which is exactly how
// an unresponsive real driver behaves.
type Replay struct {
	mu         sync.Mutex
	canned     map[string][]any
	commands   []Command
	unanswered []Command
	pending    []Message
	deferred   bool
	emit       func(Message)
	log        *zap.Logger
}

// ReplayOption configures a Replay driver.
type ReplayOption func(*Replay)

// WithReplayLogger sets the logger used for issuance traces.
func WithReplayLogger(log *zap.Logger) ReplayOption {
	return func(r *Replay) {
		r.log = log
	}
}

// WithDeferredAnswers holds every answer back until Flush. Lets a
// test issue a whole batch of commands first and deliver the answers
// later, the way a busy real driver would.
func WithDeferredAnswers() ReplayOption {
	return func(r *Replay) {
		r.deferred = true
	}
}

// NewReplay returns an empty scripted driver. Stub answers before
// use, or let every check go unanswered.
func NewReplay(opts ...ReplayOption) *Replay {
	r := &Replay{
		canned: make(map[string][]any),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetEmit installs the answer hook. The assertion core wires its
// dispatch function here via the Emitter interface.
func (r *Replay) SetEmit(fn func(Message)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emit = fn
}

// Stub appends canned values for a (key, subject) pair. Values are
// consumed one per command, in the order given.
func (r *Replay) Stub(key, subject string, values ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := stubKey(key, subject)
	r.canned[k] = append(r.canned[k], values...)
}

// Commands returns every issued command in issuance order.
func (r *Replay) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Unanswered returns the commands that found no canned value.
func (r *Replay) Unanswered() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.unanswered))
	copy(out, r.unanswered)
	return out
}

// Flush delivers every answer held back by deferred mode, in the
// order the commands were issued. A no-op for a synchronous Replay.
func (r *Replay) Flush() {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	emit := r.emit
	r.mu.Unlock()

	if emit == nil {
		return
	}
	for _, msg := range batch {
		emit(msg)
	}
}

func (r *Replay) answer(key, subject, id string) {
	cmd := Command{Key: key, Subject: subject, ID: id}

	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	k := stubKey(key, subject)
	values := r.canned[k]
	var (
		value any
		found bool
	)
	if len(values) > 0 {
		value, found = values[0], true
		r.canned[k] = values[1:]
	} else {
		r.unanswered = append(r.unanswered, cmd)
	}
	if found && r.deferred {
		r.pending = append(r.pending, Message{Key: key, ID: id, Value: value})
		r.mu.Unlock()
		return
	}
	emit := r.emit
	r.mu.Unlock()

	if !found {
		r.log.Debug("no canned answer",
			zap.String("key", key),
			zap.String("subject", subject),
			zap.String("id", id))
		return
	}
	if emit != nil {
		emit(Message{Key: key, ID: id, Value: value})
	}
}

func stubKey(key, subject string) string {
	return key + "\x00" + subject
}

func (r *Replay) Exists(_ context.Context, selector, id string) error {
	r.answer(KeyExists, selector, id)
	return nil
}

func (r *Replay) Visible(_ context.Context, selector, id string) error {
	r.answer(KeyVisible, selector, id)
	return nil
}

func (r *Replay) Text(_ context.Context, selector, id string) error {
	r.answer(KeyText, selector, id)
	return nil
}

func (r *Replay) Val(_ context.Context, selector, id string) error {
	r.answer(KeyVal, selector, id)
	return nil
}

func (r *Replay) CSS(_ context.Context, selector, _, id string) error {
	r.answer(KeyCSS, selector, id)
	return nil
}

func (r *Replay) Width(_ context.Context, selector, id string) error {
	r.answer(KeyWidth, selector, id)
	return nil
}

func (r *Replay) Height(_ context.Context, selector, id string) error {
	r.answer(KeyHeight, selector, id)
	return nil
}

func (r *Replay) Selected(_ context.Context, selector string, _ bool, id string) error {
	r.answer(KeySelected, selector, id)
	return nil
}

func (r *Replay) Enabled(_ context.Context, selector string, _ bool, id string) error {
	r.answer(KeyEnabled, selector, id)
	return nil
}

func (r *Replay) Attribute(_ context.Context, selector, _, id string) error {
	r.answer(KeyAttribute, selector, id)
	return nil
}

func (r *Replay) NumberOfElements(_ context.Context, selector, id string) error {
	r.answer(KeyNumberOfElements, selector, id)
	return nil
}

func (r *Replay) NumberOfVisibleElements(_ context.Context, selector, id string) error {
	r.answer(KeyNumberOfVisibleElements, selector, id)
	return nil
}

func (r *Replay) Cookie(_ context.Context, name, id string) error {
	r.answer(KeyCookie, name, id)
	return nil
}

func (r *Replay) HTTPStatus(_ context.Context, id string) error {
	r.answer(KeyHTTPStatus, "", id)
	return nil
}

func (r *Replay) AlertText(_ context.Context, id string) error {
	r.answer(KeyAlertText, "", id)
	return nil
}

func (r *Replay) Title(_ context.Context, id string) error {
	r.answer(KeyTitle, "", id)
	return nil
}

func (r *Replay) URL(_ context.Context, id string) error {
	r.answer(KeyURL, "", id)
	return nil
}
