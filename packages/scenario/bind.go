package scenario

import (
	"fmt"

	"github.com/abdul-hamid-achik/domspec/packages/assert"
)

// Bind declares every check in the scenario on the asserter, in
// document order. Nothing is issued until the asserter runs.
func (s *Scenario) Bind(a *assert.Asserter) error {
	for i, st := range s.Checks {
		if err := bindStep(a, st); err != nil {
			return fmt.Errorf("check %d: %w", i+1, err)
		}
	}
	return nil
}

func bindStep(a *assert.Asserter, st Step) error {
	if st.Query != nil {
		q := a.Query(st.Query.Selector)
		for i, inner := range st.Query.Checks {
			if err := bindQueryStep(q, inner); err != nil {
				return fmt.Errorf("query %q check %d: %w", st.Query.Selector, i+1, err)
			}
		}
		q.End()
		return nil
	}

	switch st.Kind {
	case "exists", "doesntExist", "visible", "notVisible",
		"selected", "notSelected", "enabled", "disabled",
		"doesntHaveText", "doesntHaveTitle", "doesntHaveUrl",
		"dialogDoesntHaveText":
		if len(st.Attach) > 0 {
			return fmt.Errorf("check kind %q takes no attachments", st.Kind)
		}
	}

	switch st.Kind {
	case "exists":
		a.Exists(st.Selector, st.Message)
	case "doesntExist":
		a.DoesntExist(st.Selector, st.Message)
	case "visible":
		a.Visible(st.Selector, st.Message)
	case "notVisible":
		a.NotVisible(st.Selector, st.Message)
	case "selected":
		a.Selected(st.Selector, st.Message)
	case "notSelected":
		a.NotSelected(st.Selector, st.Message)
	case "enabled":
		a.Enabled(st.Selector, st.Message)
	case "disabled":
		a.Disabled(st.Selector, st.Message)
	case "doesntHaveText":
		a.DoesntHaveText(st.Selector, st.Expected, st.Message)
	case "doesntHaveTitle":
		a.DoesntHaveTitle(st.Expected, st.Message)
	case "doesntHaveUrl":
		a.DoesntHaveURL(st.Expected, st.Message)
	case "dialogDoesntHaveText":
		a.DialogDoesntHaveText(st.Expected, st.Message)
	case "text":
		return attachExpect(a.Text(st.Selector, st.Expected, st.Message), st.Attach)
	case "val":
		return attachExpect(a.Val(st.Selector, st.Expected, st.Message), st.Attach)
	case "css":
		if st.Property == "" {
			return fmt.Errorf("css check needs a property")
		}
		return attachExpect(a.CSS(st.Selector, st.Property, st.Expected, st.Message), st.Attach)
	case "width":
		return attachExpect(a.Width(st.Selector, st.Expected, st.Message), st.Attach)
	case "height":
		return attachExpect(a.Height(st.Selector, st.Expected, st.Message), st.Attach)
	case "attribute":
		if st.Name == "" {
			return fmt.Errorf("attribute check needs a name")
		}
		return attachExpect(a.Attr(st.Selector, st.Name, st.Expected, st.Message), st.Attach)
	case "numberOfElements":
		return attachExpect(a.NumberOfElements(st.Selector, st.Expected, st.Message), st.Attach)
	case "numberOfVisibleElements":
		return attachExpect(a.NumberOfVisibleElements(st.Selector, st.Expected, st.Message), st.Attach)
	case "cookie":
		if st.Name == "" {
			return fmt.Errorf("cookie check needs a name")
		}
		return attachExpect(a.Cookie(st.Name, st.Expected, st.Message), st.Attach)
	case "httpStatus":
		return attachExpect(a.HTTPStatus(st.Expected, st.Message), st.Attach)
	case "title":
		return attachExpect(a.Title(st.Expected, st.Message), st.Attach)
	case "url":
		return attachExpect(a.URL(st.Expected, st.Message), st.Attach)
	case "dialogText":
		return attachExpect(a.DialogText(st.Expected, st.Message), st.Attach)
	default:
		return fmt.Errorf("unknown check kind %q", st.Kind)
	}
	return nil
}

func bindQueryStep(q *assert.Query, st Step) error {
	if st.Query != nil {
		nested := q.Query(st.Query.Selector)
		for i, inner := range st.Query.Checks {
			if err := bindQueryStep(nested, inner); err != nil {
				return fmt.Errorf("query %q check %d: %w", st.Query.Selector, i+1, err)
			}
		}
		nested.End()
		return nil
	}

	switch st.Kind {
	case "exists", "doesntExist", "visible", "notVisible",
		"selected", "notSelected", "enabled", "disabled", "doesntHaveText":
		if len(st.Attach) > 0 {
			return fmt.Errorf("check kind %q takes no attachments", st.Kind)
		}
	}

	switch st.Kind {
	case "exists":
		q.Exists(st.Message)
	case "doesntExist":
		q.DoesntExist(st.Message)
	case "visible":
		q.Visible(st.Message)
	case "notVisible":
		q.NotVisible(st.Message)
	case "selected":
		q.Selected(st.Message)
	case "notSelected":
		q.NotSelected(st.Message)
	case "enabled":
		q.Enabled(st.Message)
	case "disabled":
		q.Disabled(st.Message)
	case "doesntHaveText":
		q.DoesntHaveText(st.Expected, st.Message)
	case "text":
		return attachQueryExpect(q.Text(st.Expected, st.Message), st.Attach)
	case "val":
		return attachQueryExpect(q.Val(st.Expected, st.Message), st.Attach)
	case "css":
		if st.Property == "" {
			return fmt.Errorf("css check needs a property")
		}
		return attachQueryExpect(q.CSS(st.Property, st.Expected, st.Message), st.Attach)
	case "width":
		return attachQueryExpect(q.Width(st.Expected, st.Message), st.Attach)
	case "height":
		return attachQueryExpect(q.Height(st.Expected, st.Message), st.Attach)
	case "attribute":
		if st.Name == "" {
			return fmt.Errorf("attribute check needs a name")
		}
		return attachQueryExpect(q.Attr(st.Name, st.Expected, st.Message), st.Attach)
	case "numberOfElements":
		return attachQueryExpect(q.NumberOfElements(st.Expected, st.Message), st.Attach)
	case "numberOfVisibleElements":
		return attachQueryExpect(q.NumberOfVisibleElements(st.Expected, st.Message), st.Attach)
	default:
		return fmt.Errorf("check kind %q not available in a query block", st.Kind)
	}
	return nil
}

func attachExpect(e *assert.Expect, list []Attach) error {
	for _, at := range list {
		switch at.Op {
		case "is":
			e.Is(at.Expected, at.Message)
		case "not":
			e.Not(at.Expected, at.Message)
		case "between":
			low, high, err := bounds(at.Expected)
			if err != nil {
				return err
			}
			e.Between(low, high, at.Message)
		case "gt":
			e.Gt(at.Expected, at.Message)
		case "gte":
			e.Gte(at.Expected, at.Message)
		case "lt":
			e.Lt(at.Expected, at.Message)
		case "lte":
			e.Lte(at.Expected, at.Message)
		default:
			return fmt.Errorf("unknown attachment op %q", at.Op)
		}
	}
	return nil
}

func attachQueryExpect(e *assert.QueryExpect, list []Attach) error {
	for _, at := range list {
		switch at.Op {
		case "is":
			e.Is(at.Expected, at.Message)
		case "not":
			e.Not(at.Expected, at.Message)
		case "between":
			low, high, err := bounds(at.Expected)
			if err != nil {
				return err
			}
			e.Between(low, high, at.Message)
		case "gt":
			e.Gt(at.Expected, at.Message)
		case "gte":
			e.Gte(at.Expected, at.Message)
		case "lt":
			e.Lt(at.Expected, at.Message)
		case "lte":
			e.Lte(at.Expected, at.Message)
		default:
			return fmt.Errorf("unknown attachment op %q", at.Op)
		}
	}
	return nil
}

func bounds(v any) (low, high any, err error) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return nil, nil, fmt.Errorf("between expects a two-element [low, high] range, got %v", v)
	}
	return pair[0], pair[1], nil
}
