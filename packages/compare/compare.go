package compare

import (
	"fmt"
	"reflect"
	"strconv"
)

// Func is the shared comparator signature. The expected value always
// comes first; listeners close over it when a check is declared and
// supply the driver answer as actual when it arrives.
type Func func(expected, actual any) bool

// Apply runs a comparator and recovers any panic into a failed
// comparison. Malformed expected values (a between range that is not
// a two-element list, for example) must fail the check they belong
// to, never the process.
func Apply(fn Func, expected, actual any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return fn(expected, actual)
}

// Equals compares deeply first, then numerically (so 5 matches "5"),
// then by string form.
func Equals(expected, actual any) bool {
	if reflect.DeepEqual(actual, expected) {
		return true
	}

	actualNum, aOk := toFloat64(actual)
	expectedNum, eOk := toFloat64(expected)
	if aOk && eOk && actualNum == expectedNum {
		return true
	}

	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

// NotEquals is the negation of Equals.
func NotEquals(expected, actual any) bool {
	return !Equals(expected, actual)
}

// Gt reports whether actual is strictly greater than expected.
// Non-numeric operands never satisfy it.
func Gt(expected, actual any) bool {
	expectedNum, eOk := toFloat64(expected)
	actualNum, aOk := toFloat64(actual)
	if !eOk || !aOk {
		return false
	}
	return actualNum > expectedNum
}

// Lt reports whether actual is strictly less than expected.
func Lt(expected, actual any) bool {
	expectedNum, eOk := toFloat64(expected)
	actualNum, aOk := toFloat64(actual)
	if !eOk || !aOk {
		return false
	}
	return actualNum < expectedNum
}

// Gte lowers the bound by one and delegates to Gt. For integer
// operands this gives ordinary >= semantics; fractional actuals in
// the open interval (expected-1, expected) also pass, which callers
// of checks that only ever produce integers never observe.
func Gte(expected, actual any) bool {
	expectedNum, ok := toFloat64(expected)
	if !ok {
		return false
	}
	return Gt(expectedNum-1, actual)
}

// Lte raises the bound by one and delegates to Lt.
func Lte(expected, actual any) bool {
	expectedNum, ok := toFloat64(expected)
	if !ok {
		return false
	}
	return Lt(expectedNum+1, actual)
}

// Between treats expected as a two-element [low, high] list and
// reports whether actual falls inside it, bounds included. Anything
// other than a two-element list panics; run it through Apply.
func Between(expected, actual any) bool {
	bounds := expected.([]any)
	low, lowOk := toFloat64(bounds[0])
	high, highOk := toFloat64(bounds[1])
	actualNum, aOk := toFloat64(actual)
	if !lowOk || !highOk || !aOk {
		return false
	}
	return actualNum >= low && actualNum <= high
}

// Truthy accepts boolean true and the string "true". Drivers answer
// presence checks with either form depending on the transport.
func Truthy(_, actual any) bool {
	return actual == true || actual == "true"
}

// Falsy accepts boolean false and the string "false".
func Falsy(_, actual any) bool {
	return actual == false || actual == "false"
}

// Absent reports whether an expected value counts as not provided:
// nil, false, the empty string, or numeric zero. Checks treat an
// absent expected value as "presence only" for a fixed set of kinds.
func Absent(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	default:
		if f, ok := toFloat64(v); ok {
			return f == 0
		}
	}
	return false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
