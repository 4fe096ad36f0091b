package report

import "sync"

// Event is one assertion outcome as delivered to the report sink:
// whether the comparison passed, what was expected, the value the
// driver produced, the author's message, and the check or operator
// name it belongs to.
type Event struct {
	Success  bool   `json:"success"`
	Expected any    `json:"expected"`
	Value    any    `json:"value"`
	Message  string `json:"message,omitempty"`
	Type     string `json:"type"`
}

// Sink consumes report events as checks resolve. Implementations
// must tolerate being called from listener callbacks.
type Sink interface {
	Report(Event)
}

// Multi fans one event out to several sinks in order.
type Multi []Sink

func (m Multi) Report(e Event) {
	for _, s := range m {
		s.Report(e)
	}
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Event) {}

// Collector accumulates events in arrival order. Used by tests and
// by the CLI to build summaries and history rows.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of everything collected so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Failures returns the collected events with Success == false.
func (c *Collector) Failures() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, e := range c.events {
		if !e.Success {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of collected events.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}
