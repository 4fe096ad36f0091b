package assert

import "github.com/abdul-hamid-achik/domspec/packages/correlate"

// Query is the handle returned by Asserter.Query: the same checks,
// minus the selector argument, scoped to the selector the block was
// opened with. The handle keeps its selector even if the block is
// ended underneath it; well-formed callers close the block once,
// with End, when they are done.
type Query struct {
	a        *Asserter
	selector string
}

// End closes the query block and hands back the outer surface.
func (q *Query) End() *Asserter {
	return q.a.End()
}

// Query opens a nested block scoped to a different selector.
func (q *Query) Query(selector string) *Query {
	return q.a.Query(selector)
}

// Chain opens a chain block inside the query. Checks made through
// the outer surface need explicit selectors again until it ends.
func (q *Query) Chain() *Asserter {
	return q.a.Chain()
}

// Exists asserts that at least one element matches the selector.
func (q *Query) Exists(message ...string) *Query {
	q.a.existsCheck(q.selector, true, note(message))
	return q
}

// DoesntExist asserts that no element matches the selector.
func (q *Query) DoesntExist(message ...string) *Query {
	q.a.existsCheck(q.selector, false, note(message))
	return q
}

// Visible asserts that a matching element is visible.
func (q *Query) Visible(message ...string) *Query {
	q.a.visibleCheck(q.selector, true, note(message))
	return q
}

// NotVisible asserts that no matching element is visible.
func (q *Query) NotVisible(message ...string) *Query {
	q.a.visibleCheck(q.selector, false, note(message))
	return q
}

// Selected asserts that the matching option or checkbox is selected.
func (q *Query) Selected(message ...string) *Query {
	q.a.selectedCheck(q.selector, true, note(message))
	return q
}

// NotSelected asserts the opposite.
func (q *Query) NotSelected(message ...string) *Query {
	q.a.selectedCheck(q.selector, false, note(message))
	return q
}

// Enabled asserts that the matching form element is enabled.
func (q *Query) Enabled(message ...string) *Query {
	q.a.enabledCheck(q.selector, true, note(message))
	return q
}

// Disabled asserts the opposite.
func (q *Query) Disabled(message ...string) *Query {
	q.a.enabledCheck(q.selector, false, note(message))
	return q
}

// Text fetches the element's text content.
func (q *Query) Text(expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.textCheck(q.selector, expected, note(message))}
}

// DoesntHaveText asserts the element's text differs from expected.
func (q *Query) DoesntHaveText(expected any, message ...string) *Query {
	q.a.doesntHaveTextCheck(q.selector, expected, note(message))
	return q
}

// Val fetches the form element's value.
func (q *Query) Val(expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.valCheck(q.selector, expected, note(message))}
}

// CSS fetches a computed style property.
func (q *Query) CSS(property string, expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.cssCheck(q.selector, property, expected, note(message))}
}

// Width fetches the element's width in pixels.
func (q *Query) Width(expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.widthCheck(q.selector, expected, note(message))}
}

// Height fetches the element's height in pixels.
func (q *Query) Height(expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.heightCheck(q.selector, expected, note(message))}
}

// Attr fetches an attribute value.
func (q *Query) Attr(name string, expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.attrCheck(q.selector, name, expected, note(message))}
}

// NumberOfElements counts the elements matching the selector.
func (q *Query) NumberOfElements(expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.countCheck(q.selector, expected, note(message))}
}

// NumberOfVisibleElements counts the visible ones.
func (q *Query) NumberOfVisibleElements(expected any, message ...string) *QueryExpect {
	return &QueryExpect{Query: q, check: q.a.visibleCountCheck(q.selector, expected, note(message))}
}

// QueryExpect pairs a query-scoped check with the comparator
// attachments, so judged fetches keep chaining inside the block.
type QueryExpect struct {
	*Query
	check *correlate.Check
}

// Is asserts the fetched value equals expected.
func (e *QueryExpect) Is(expected any, message ...string) *QueryExpect {
	e.a.attach(e.check, opIs, expected, note(message))
	return e
}

// Not asserts the fetched value differs from expected.
func (e *QueryExpect) Not(expected any, message ...string) *QueryExpect {
	e.a.attach(e.check, opNot, expected, note(message))
	return e
}

// Between asserts the fetched value lies in [low, high], inclusive.
func (e *QueryExpect) Between(low, high any, message ...string) *QueryExpect {
	e.a.attach(e.check, opBetween, []any{low, high}, note(message))
	return e
}

// Gt asserts the fetched value is strictly greater than expected.
func (e *QueryExpect) Gt(expected any, message ...string) *QueryExpect {
	e.a.attach(e.check, opGt, expected, note(message))
	return e
}

// Gte asserts the fetched value is at least expected.
func (e *QueryExpect) Gte(expected any, message ...string) *QueryExpect {
	e.a.attach(e.check, opGte, expected, note(message))
	return e
}

// Lt asserts the fetched value is strictly less than expected.
func (e *QueryExpect) Lt(expected any, message ...string) *QueryExpect {
	e.a.attach(e.check, opLt, expected, note(message))
	return e
}

// Lte asserts the fetched value is at most expected.
func (e *QueryExpect) Lte(expected any, message ...string) *QueryExpect {
	e.a.attach(e.check, opLte, expected, note(message))
	return e
}
