// Package stats records issue-to-answer latency per check kind.
// Useful for spotting a driver that answers element counts quickly
// but computed styles slowly.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder aggregates answer latencies into one histogram per
// semantic key. Latencies are kept in microseconds, 1us to 60s,
// 3 significant digits.
type Recorder struct {
	mu    sync.Mutex
	byKey map[string]*hdrhistogram.Histogram
}

// KeySummary is the digest for one semantic key.
type KeySummary struct {
	Key   string
	Count int64
	Min   time.Duration
	Max   time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKey: make(map[string]*hdrhistogram.Histogram),
	}
}

// Record notes one answered check.
func (r *Recorder) Record(key string, latency time.Duration) {
	us := latency.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > 60_000_000 {
		us = 60_000_000
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byKey[key]
	if !ok {
		h = hdrhistogram.New(1, 60_000_000, 3)
		r.byKey[key] = h
	}
	_ = h.RecordValue(us)
}

// Summary returns one digest per recorded key, sorted by key name.
func (r *Recorder) Summary() []KeySummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]KeySummary, 0, len(r.byKey))
	for key, h := range r.byKey {
		out = append(out, digest(key, h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Overall returns one digest across every key. Count is zero when
// nothing has been recorded.
func (r *Recorder) Overall() KeySummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := hdrhistogram.New(1, 60_000_000, 3)
	for _, h := range r.byKey {
		total.Merge(h)
	}
	if total.TotalCount() == 0 {
		return KeySummary{Key: "overall"}
	}
	return digest("overall", total)
}

func digest(key string, h *hdrhistogram.Histogram) KeySummary {
	return KeySummary{
		Key:   key,
		Count: h.TotalCount(),
		Min:   time.Duration(h.Min()) * time.Microsecond,
		Max:   time.Duration(h.Max()) * time.Microsecond,
		P50:   time.Duration(h.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(h.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(h.ValueAtQuantile(99)) * time.Microsecond,
	}
}
