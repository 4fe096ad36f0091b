package correlate

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/domspec/packages/compare"
	"github.com/abdul-hamid-achik/domspec/packages/driver"
	"github.com/abdul-hamid-achik/domspec/packages/report"
)

// Check describes one issued assertion: the identifier the driver
// will echo back, the semantic key of the value asked for, the
// report type, the comparator with its expected value, and the
// author's message. Immutable after creation.
type Check struct {
	ID         string
	Key        string
	Type       string
	Comparator compare.Func
	Expected   any
	Selector   string
	Message    string
}

// Handler consumes messages off the shared stream. It returns true
// when the message answered it, which removes it from the Router.
type Handler func(driver.Message) bool

// presenceKinds are the semantic keys whose checks skip comparison
// entirely when no expected value was supplied. The author is asking
// for the value (usually to attach an operator), not asserting on
// it. Any absent-shaped expected value suppresses, zero and false
// included.
var presenceKinds = map[string]struct{}{
	driver.KeyTitle:                   {},
	driver.KeyWidth:                   {},
	driver.KeyHeight:                  {},
	driver.KeyURL:                     {},
	driver.KeyText:                    {},
	driver.KeyAttribute:               {},
	driver.KeyNumberOfElements:        {},
	driver.KeyNumberOfVisibleElements: {},
}

// Registry mints check identifiers and builds the listeners that
// answer them. It owns no listener state itself; listeners report
// through the sink and counters it was built with.
type Registry struct {
	counters *Counters
	sink     report.Sink
	log      *zap.Logger
}

type RegistryOption func(*Registry)

// WithLogger sets the logger for suppression and match traces.
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

func NewRegistry(counters *Counters, sink report.Sink, opts ...RegistryOption) *Registry {
	r := &Registry{
		counters: counters,
		sink:     sink,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register builds a check descriptor with a fresh identifier.
// Identifiers never repeat within a run.
func (r *Registry) Register(key, typ string, cmp compare.Func, expected any, selector, message string) *Check {
	return &Check{
		ID:         uuid.NewString(),
		Key:        key,
		Type:       typ,
		Comparator: cmp,
		Expected:   expected,
		Selector:   selector,
		Message:    message,
	}
}

// Listener builds the one-shot handler that resolves c. It ignores
// every message except the one matching both the semantic key and
// the identifier; on that message it either suppresses (absent
// expected on a presence kind) or evaluates the comparator, reports,
// and bumps the counters. A panicking comparator resolves to a
// failed comparison.
func (r *Registry) Listener(c *Check) Handler {
	return func(msg driver.Message) bool {
		if msg.Key != c.Key || msg.ID != c.ID {
			return false
		}

		if compare.Absent(c.Expected) {
			if _, presence := presenceKinds[c.Key]; presence {
				r.log.Debug("comparison suppressed",
					zap.String("key", c.Key),
					zap.String("id", c.ID))
				return true
			}
		}

		success := compare.Apply(c.Comparator, c.Expected, msg.Value)
		r.counters.Record(success)
		r.sink.Report(report.Event{
			Success:  success,
			Expected: c.Expected,
			Value:    msg.Value,
			Message:  c.Message,
			Type:     c.Type,
		})
		r.log.Debug("check resolved",
			zap.String("key", c.Key),
			zap.String("id", c.ID),
			zap.Bool("success", success))
		return true
	}
}
