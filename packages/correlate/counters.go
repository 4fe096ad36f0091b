package correlate

import "sync"

// Counters tracks resolved comparisons across a run. The totals only
// ever grow; suppressed comparisons touch neither.
type Counters struct {
	mu           sync.Mutex
	expectations int
	failures     int
}

// Record notes one resolved comparison.
func (c *Counters) Record(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expectations++
	if !success {
		c.failures++
	}
}

// Totals returns the expectations seen so far and how many failed.
func (c *Counters) Totals() (expectations, failures int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expectations, c.failures
}
