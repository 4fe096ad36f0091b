package assert

import (
	"github.com/abdul-hamid-achik/domspec/packages/compare"
	"github.com/abdul-hamid-achik/domspec/packages/correlate"
	"github.com/abdul-hamid-achik/domspec/packages/driver"
	"github.com/abdul-hamid-achik/domspec/packages/report"

	"go.uber.org/zap"
)

// attachOp tags one comparator-attachment operator: its report name,
// the predicate, and whether the outcome is negated.
type attachOp struct {
	name   string
	fn     compare.Func
	negate bool
}

var (
	opIs      = attachOp{name: "is", fn: compare.Equals}
	opNot     = attachOp{name: "not", fn: compare.Equals, negate: true}
	opBetween = attachOp{name: "between", fn: compare.Between}
	opGt      = attachOp{name: "gt", fn: compare.Gt}
	opGte     = attachOp{name: "gte", fn: compare.Gte}
	opLt      = attachOp{name: "lt", fn: compare.Lt}
	opLte     = attachOp{name: "lte", fn: compare.Lte}
)

// attach subscribes a second listener against the check's
// identifier. It reuses the answer the check's own listener
// correlates (no new driver command) and fires at most once per
// (identifier, operator) pair, however often the message shows up
// or however many times the same operator is attached.
func (a *Asserter) attach(c *correlate.Check, op attachOp, expected any, message string) {
	a.router.Observe(c.ID, func(msg driver.Message) bool {
		if msg.ID != c.ID {
			return false
		}
		if !a.proceeded.Mark(c.ID, op.name) {
			// A sibling already judged this pair; vacate silently.
			return true
		}

		success := compare.Apply(func(e, v any) bool {
			r := op.fn(e, v)
			if op.negate {
				r = !r
			}
			return r
		}, expected, msg.Value)

		a.counters.Record(success)
		a.sink.Report(report.Event{
			Success:  success,
			Expected: expected,
			Value:    msg.Value,
			Message:  message,
			Type:     op.name,
		})
		a.log.Debug("attachment resolved",
			zap.String("operator", op.name),
			zap.String("id", c.ID),
			zap.Bool("success", success))
		return true
	})
}

// Expect is the handle a value-producing check returns. The full
// assertion surface stays available through the embedded Asserter;
// on top of it, comparator attachments judge the value the check
// fetched.
type Expect struct {
	*Asserter
	check *correlate.Check
}

// Is asserts the fetched value equals expected.
func (e *Expect) Is(expected any, message ...string) *Expect {
	e.attach(e.check, opIs, expected, note(message))
	return e
}

// Not asserts the fetched value differs from expected.
func (e *Expect) Not(expected any, message ...string) *Expect {
	e.attach(e.check, opNot, expected, note(message))
	return e
}

// Between asserts the fetched value lies in [low, high], inclusive.
func (e *Expect) Between(low, high any, message ...string) *Expect {
	e.attach(e.check, opBetween, []any{low, high}, note(message))
	return e
}

// Gt asserts the fetched value is strictly greater than expected.
func (e *Expect) Gt(expected any, message ...string) *Expect {
	e.attach(e.check, opGt, expected, note(message))
	return e
}

// Gte asserts the fetched value is at least expected.
func (e *Expect) Gte(expected any, message ...string) *Expect {
	e.attach(e.check, opGte, expected, note(message))
	return e
}

// Lt asserts the fetched value is strictly less than expected.
func (e *Expect) Lt(expected any, message ...string) *Expect {
	e.attach(e.check, opLt, expected, note(message))
	return e
}

// Lte asserts the fetched value is at most expected.
func (e *Expect) Lte(expected any, message ...string) *Expect {
	e.attach(e.check, opLte, expected, note(message))
	return e
}
