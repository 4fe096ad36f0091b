package driver

import "context"

// Message is one answer on the shared driver stream. Key names the
// kind of value (matching the command that requested it), ID echoes
// the correlation identifier the command carried, and Value holds
// the produced value. Transports frequently stringify booleans and
// numbers, so Value may be a string form of either.
type Message struct {
	Key   string `json:"key"`
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// Driver is the command side of the boundary, one method per check
// kind. Methods return an error only when the command could not be
// issued; the answer itself arrives later as a Message. The bool on
// Selected and Enabled is the state the caller asked about. It rides
// along on the wire, while the answer reports the raw state.
type Driver interface {
	Exists(ctx context.Context, selector, id string) error
	Visible(ctx context.Context, selector, id string) error
	Text(ctx context.Context, selector, id string) error
	Val(ctx context.Context, selector, id string) error
	CSS(ctx context.Context, selector, property, id string) error
	Width(ctx context.Context, selector, id string) error
	Height(ctx context.Context, selector, id string) error
	Selected(ctx context.Context, selector string, state bool, id string) error
	Enabled(ctx context.Context, selector string, state bool, id string) error
	Attribute(ctx context.Context, selector, name, id string) error
	NumberOfElements(ctx context.Context, selector, id string) error
	NumberOfVisibleElements(ctx context.Context, selector, id string) error
	Cookie(ctx context.Context, name, id string) error
	HTTPStatus(ctx context.Context, id string) error
	AlertText(ctx context.Context, id string) error
	Title(ctx context.Context, id string) error
	URL(ctx context.Context, id string) error
}

// Emitter is implemented by drivers that deliver answers in-process.
// The assertion core wires its dispatch function in at construction
// so answers flow straight into the correlation router.
type Emitter interface {
	SetEmit(func(Message))
}

// Semantic keys, shared between commands and answers.
const (
	KeyExists                  = "exists"
	KeyVisible                 = "visible"
	KeyText                    = "text"
	KeyVal                     = "val"
	KeyCSS                     = "css"
	KeyWidth                   = "width"
	KeyHeight                  = "height"
	KeySelected                = "selected"
	KeyEnabled                 = "enabled"
	KeyAttribute               = "attribute"
	KeyNumberOfElements        = "numberOfElements"
	KeyNumberOfVisibleElements = "numberOfVisibleElements"
	KeyCookie                  = "cookie"
	KeyHTTPStatus              = "httpStatus"
	KeyAlertText               = "alertText"
	KeyTitle                   = "title"
	KeyURL                     = "url"
)
