package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Report(Event{Success: true, Type: "exists", Message: "nav present"})
	c.Report(Event{Success: false, Type: "is", Expected: 4, Value: 3})
	c.Report(Event{Success: true, Type: "title"})

	assert.Equal(t, 3, c.Len())

	failures := c.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "is", failures[0].Type)
	assert.Equal(t, 4, failures[0].Expected)
}

func TestMultiFansOut(t *testing.T) {
	a := NewCollector()
	b := NewCollector()
	m := Multi{a, b}

	m.Report(Event{Success: true, Type: "url"})

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestConsole_SuccessLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithNoColor(true))

	c.Report(Event{Success: true, Type: "exists", Message: "nav present"})

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "nav present")
	assert.NotContains(t, out, "Expected:")
}

func TestConsole_FailureShowsDetail(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithNoColor(true))

	c.Report(Event{Success: false, Type: "is", Expected: 4, Value: 3, Message: "four teasers"})

	out := buf.String()
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "Expected: 4")
	assert.Contains(t, out, "Actual:   3")
}

func TestConsole_BetweenRangeRendering(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithNoColor(true))

	c.Report(Event{Success: false, Type: "between", Expected: []any{2, 6}, Value: 7})

	assert.Contains(t, buf.String(), "[2, 6]")
}

func TestConsole_Summary(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithNoColor(true))

	c.Summary(5, 2, 1200*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "3 passed")
	assert.Contains(t, out, "2 failed")
	assert.Contains(t, out, "5 total")
}

func TestJSONLines_OneObjectPerEvent(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONLines(JSONLinesWithWriter(&buf))

	j.Report(Event{Success: true, Type: "exists"})
	j.Report(Event{Success: false, Type: "is", Expected: 4, Value: 3})
	j.Summary(2, 1, time.Second)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var first Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.True(t, first.Success)
	assert.Equal(t, "exists", first.Type)

	var last map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.EqualValues(t, 2, last["summary"]["expectations"])
	assert.EqualValues(t, 1, last["summary"]["failures"])
}
