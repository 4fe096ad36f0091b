package report

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// jsonSummary is the final line of a JSON Lines run.
type jsonSummary struct {
	Expectations int     `json:"expectations"`
	Failures     int     `json:"failures"`
	Duration     float64 `json:"duration"`
	Time         string  `json:"time"`
}

// JSONLines writes one JSON object per event, as they arrive. Meant
// for piping into other tooling; the summary goes out as a final
// object wrapped in {"summary": ...}.
type JSONLines struct {
	mu     sync.Mutex
	writer io.Writer
	enc    *json.Encoder
}

type JSONLinesOption func(*JSONLines)

func NewJSONLines(opts ...JSONLinesOption) *JSONLines {
	j := &JSONLines{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.enc = json.NewEncoder(j.writer)
	return j
}

func JSONLinesWithWriter(w io.Writer) JSONLinesOption {
	return func(j *JSONLines) {
		j.writer = w
	}
}

func (j *JSONLines) Report(e Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	// Encoding an Event cannot fail for the value types drivers
	// produce; a broken pipe just stops the stream.
	_ = j.enc.Encode(e)
}

// Summary emits the closing totals object.
func (j *JSONLines) Summary(expectations, failures int, elapsed time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	_ = j.enc.Encode(map[string]jsonSummary{"summary": {
		Expectations: expectations,
		Failures:     failures,
		Duration:     float64(elapsed.Milliseconds()),
		Time:         time.Now().Format(time.RFC3339),
	}})
}
