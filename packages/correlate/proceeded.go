package correlate

import "sync"

// ProceededSet records comparator attachments that have already
// fired. The same answer may be observed by several listeners, so an
// attachment marks its (identifier, operator) pair here before
// reporting and never reports again.
type ProceededSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewProceededSet() *ProceededSet {
	return &ProceededSet{seen: make(map[string]struct{})}
}

// Mark records the pair and reports whether it was newly added.
// The test and the set happen atomically.
func (p *ProceededSet) Mark(id, operator string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := id + "\x00" + operator
	if _, ok := p.seen[key]; ok {
		return false
	}
	p.seen[key] = struct{}{}
	return true
}

// Proceeded reports whether the pair has fired already.
func (p *ProceededSet) Proceeded(id, operator string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.seen[id+"\x00"+operator]
	return ok
}
