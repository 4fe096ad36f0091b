package assert

import (
	"context"

	"github.com/abdul-hamid-achik/domspec/packages/compare"
	"github.com/abdul-hamid-achik/domspec/packages/correlate"
	"github.com/abdul-hamid-achik/domspec/packages/driver"
)

func note(message []string) string {
	if len(message) == 0 {
		return ""
	}
	return message[0]
}

// Exists asserts that at least one element matches the selector.
func (a *Asserter) Exists(selector string, message ...string) *Asserter {
	a.existsCheck(selector, true, note(message))
	return a
}

// DoesntExist asserts that no element matches the selector.
func (a *Asserter) DoesntExist(selector string, message ...string) *Asserter {
	a.existsCheck(selector, false, note(message))
	return a
}

// Visible asserts that a matching element is visible.
func (a *Asserter) Visible(selector string, message ...string) *Asserter {
	a.visibleCheck(selector, true, note(message))
	return a
}

// NotVisible asserts that no matching element is visible.
func (a *Asserter) NotVisible(selector string, message ...string) *Asserter {
	a.visibleCheck(selector, false, note(message))
	return a
}

// Selected asserts that the matching option or checkbox is selected.
func (a *Asserter) Selected(selector string, message ...string) *Asserter {
	a.selectedCheck(selector, true, note(message))
	return a
}

// NotSelected asserts the opposite.
func (a *Asserter) NotSelected(selector string, message ...string) *Asserter {
	a.selectedCheck(selector, false, note(message))
	return a
}

// Enabled asserts that the matching form element is enabled.
func (a *Asserter) Enabled(selector string, message ...string) *Asserter {
	a.enabledCheck(selector, true, note(message))
	return a
}

// Disabled asserts the opposite.
func (a *Asserter) Disabled(selector string, message ...string) *Asserter {
	a.enabledCheck(selector, false, note(message))
	return a
}

// Text fetches the element's text content. With an expected value it
// asserts equality; with nil it only fetches, leaving judgement to
// an attached operator.
func (a *Asserter) Text(selector string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.textCheck(selector, expected, note(message))}
}

// DoesntHaveText asserts the element's text differs from expected.
func (a *Asserter) DoesntHaveText(selector string, expected any, message ...string) *Asserter {
	a.doesntHaveTextCheck(selector, expected, note(message))
	return a
}

// Val fetches the form element's value. The expected value never
// crosses the driver boundary; comparison is local.
func (a *Asserter) Val(selector string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.valCheck(selector, expected, note(message))}
}

// CSS fetches a computed style property.
func (a *Asserter) CSS(selector, property string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.cssCheck(selector, property, expected, note(message))}
}

// Width fetches the element's width in pixels.
func (a *Asserter) Width(selector string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.widthCheck(selector, expected, note(message))}
}

// Height fetches the element's height in pixels.
func (a *Asserter) Height(selector string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.heightCheck(selector, expected, note(message))}
}

// Attr fetches an attribute value.
func (a *Asserter) Attr(selector, name string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.attrCheck(selector, name, expected, note(message))}
}

// NumberOfElements counts the elements matching the selector.
func (a *Asserter) NumberOfElements(selector string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.countCheck(selector, expected, note(message))}
}

// NumberOfVisibleElements counts the visible ones.
func (a *Asserter) NumberOfVisibleElements(selector string, expected any, message ...string) *Expect {
	return &Expect{Asserter: a, check: a.visibleCountCheck(selector, expected, note(message))}
}

// Cookie fetches a cookie by name.
func (a *Asserter) Cookie(name string, expected any, message ...string) *Expect {
	c := a.registry.Register(driver.KeyCookie, "cookie", compare.Equals, expected, name, note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Cookie(ctx, name, id)
	})
	return &Expect{Asserter: a, check: c}
}

// HTTPStatus fetches the status code of the last main document load.
func (a *Asserter) HTTPStatus(expected any, message ...string) *Expect {
	c := a.registry.Register(driver.KeyHTTPStatus, "httpStatus", compare.Equals, expected, "", note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.HTTPStatus(ctx, id)
	})
	return &Expect{Asserter: a, check: c}
}

// Title fetches the page title.
func (a *Asserter) Title(expected any, message ...string) *Expect {
	c := a.registry.Register(driver.KeyTitle, "title", compare.Equals, expected, "", note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Title(ctx, id)
	})
	return &Expect{Asserter: a, check: c}
}

// DoesntHaveTitle asserts the page title differs from expected.
func (a *Asserter) DoesntHaveTitle(expected any, message ...string) *Asserter {
	c := a.registry.Register(driver.KeyTitle, "doesntHaveTitle", compare.NotEquals, expected, "", note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Title(ctx, id)
	})
	return a
}

// URL fetches the page URL.
func (a *Asserter) URL(expected any, message ...string) *Expect {
	c := a.registry.Register(driver.KeyURL, "url", compare.Equals, expected, "", note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.URL(ctx, id)
	})
	return &Expect{Asserter: a, check: c}
}

// DoesntHaveURL asserts the page URL differs from expected.
func (a *Asserter) DoesntHaveURL(expected any, message ...string) *Asserter {
	c := a.registry.Register(driver.KeyURL, "doesntHaveUrl", compare.NotEquals, expected, "", note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.URL(ctx, id)
	})
	return a
}

// DialogText fetches the text of the open alert or confirm dialog.
func (a *Asserter) DialogText(expected any, message ...string) *Expect {
	c := a.registry.Register(driver.KeyAlertText, "dialogText", compare.Equals, expected, "", note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.AlertText(ctx, id)
	})
	return &Expect{Asserter: a, check: c}
}

// DialogDoesntHaveText asserts the dialog text differs from expected.
func (a *Asserter) DialogDoesntHaveText(expected any, message ...string) *Asserter {
	c := a.registry.Register(driver.KeyAlertText, "dialogDoesntHaveText", compare.NotEquals, expected, "", note(message))
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.AlertText(ctx, id)
	})
	return a
}

// Workers shared by the direct and the query forms. The query form
// supplies its stored selector; everything else is identical.

func (a *Asserter) existsCheck(selector string, want bool, message string) {
	cmp, typ := compare.Truthy, "exists"
	if !want {
		cmp, typ = compare.Falsy, "doesntExist"
	}
	c := a.registry.Register(driver.KeyExists, typ, cmp, want, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Exists(ctx, selector, id)
	})
}

func (a *Asserter) visibleCheck(selector string, want bool, message string) {
	cmp, typ := compare.Truthy, "visible"
	if !want {
		cmp, typ = compare.Falsy, "notVisible"
	}
	c := a.registry.Register(driver.KeyVisible, typ, cmp, want, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Visible(ctx, selector, id)
	})
}

func (a *Asserter) selectedCheck(selector string, want bool, message string) {
	cmp, typ := compare.Truthy, "selected"
	if !want {
		cmp, typ = compare.Falsy, "notSelected"
	}
	c := a.registry.Register(driver.KeySelected, typ, cmp, want, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Selected(ctx, selector, want, id)
	})
}

func (a *Asserter) enabledCheck(selector string, want bool, message string) {
	cmp, typ := compare.Truthy, "enabled"
	if !want {
		cmp, typ = compare.Falsy, "disabled"
	}
	c := a.registry.Register(driver.KeyEnabled, typ, cmp, want, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Enabled(ctx, selector, want, id)
	})
}

func (a *Asserter) textCheck(selector string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyText, "text", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Text(ctx, selector, id)
	})
	return c
}

func (a *Asserter) doesntHaveTextCheck(selector string, expected any, message string) {
	c := a.registry.Register(driver.KeyText, "doesntHaveText", compare.NotEquals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Text(ctx, selector, id)
	})
}

func (a *Asserter) valCheck(selector string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyVal, "val", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Val(ctx, selector, id)
	})
	return c
}

func (a *Asserter) cssCheck(selector, property string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyCSS, "css", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.CSS(ctx, selector, property, id)
	})
	return c
}

func (a *Asserter) widthCheck(selector string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyWidth, "width", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Width(ctx, selector, id)
	})
	return c
}

func (a *Asserter) heightCheck(selector string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyHeight, "height", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Height(ctx, selector, id)
	})
	return c
}

func (a *Asserter) attrCheck(selector, name string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyAttribute, "attribute", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.Attribute(ctx, selector, name, id)
	})
	return c
}

func (a *Asserter) countCheck(selector string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyNumberOfElements, "numberOfElements", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.NumberOfElements(ctx, selector, id)
	})
	return c
}

func (a *Asserter) visibleCountCheck(selector string, expected any, message string) *correlate.Check {
	c := a.registry.Register(driver.KeyNumberOfVisibleElements, "numberOfVisibleElements", compare.Equals, expected, selector, message)
	a.declare(c, func(ctx context.Context, id string) error {
		return a.drv.NumberOfVisibleElements(ctx, selector, id)
	})
	return c
}
