// Package remote drives a browser over a WebSocket connection.
// Commands go out as JSON envelopes {"method","id","args"}; answers
// come back as {"key","id","value"} and are fed into the assertion
// core's dispatch hook.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/domspec/packages/driver"
)

type command struct {
	Method string `json:"method"`
	ID     string `json:"id"`
	Args   []any  `json:"args"`
}

// Client is a WebSocket driver. It satisfies driver.Driver for the
// outbound half and driver.Emitter for the inbound half; a single
// reader goroutine owns the connection's read side for the client's
// lifetime.
type Client struct {
	conn *websocket.Conn
	log  *zap.Logger

	writeMu sync.Mutex

	emitMu sync.Mutex
	emit   func(driver.Message)

	readerDone chan struct{}
	closeOnce  sync.Once
	closeErr   error
}

var (
	_ driver.Driver  = (*Client)(nil)
	_ driver.Emitter = (*Client)(nil)
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithLogger sets the logger used for connection traces.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// Dial connects to a driver endpoint (ws:// or wss://) and starts the
// reader. Answers that arrive before SetEmit installs a dispatch hook
// are dropped.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial driver %s: %w", url, err)
	}

	c := &Client{
		conn:       conn,
		log:        zap.NewNop(),
		readerDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.readLoop()
	return c, nil
}

// SetEmit installs the hook every decoded answer is handed to.
func (c *Client) SetEmit(fn func(driver.Message)) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.emit = fn
}

func (c *Client) readLoop() {
	defer close(c.readerDone)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.log.Debug("driver read loop ended", zap.Error(err))
			return
		}

		key := gjson.GetBytes(data, "key")
		id := gjson.GetBytes(data, "id")
		if !key.Exists() || !id.Exists() {
			c.log.Debug("malformed driver answer", zap.ByteString("payload", data))
			continue
		}
		msg := driver.Message{
			Key:   key.String(),
			ID:    id.String(),
			Value: gjson.GetBytes(data, "value").Value(),
		}

		c.emitMu.Lock()
		emit := c.emit
		c.emitMu.Unlock()
		if emit == nil {
			c.log.Debug("answer before dispatch hook installed", zap.String("id", msg.ID))
			continue
		}
		emit(msg)
	}
}

func (c *Client) send(ctx context.Context, method, id string, args ...any) error {
	if args == nil {
		args = []any{}
	}
	payload, err := json.Marshal(command{Method: method, ID: id, Args: args})
	if err != nil {
		return fmt.Errorf("encode %s command: %w", method, err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("send %s command: %w", method, err)
	}
	c.log.Debug("command sent", zap.String("method", method), zap.String("id", id))
	return nil
}

// Close sends a close frame, tears down the connection, and waits for
// the reader to drain. Safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()

		c.closeErr = c.conn.Close()
		<-c.readerDone
	})
	return c.closeErr
}

func (c *Client) Exists(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyExists, id, selector)
}

func (c *Client) Visible(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyVisible, id, selector)
}

func (c *Client) Text(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyText, id, selector)
}

func (c *Client) Val(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyVal, id, selector)
}

func (c *Client) CSS(ctx context.Context, selector, property, id string) error {
	return c.send(ctx, driver.KeyCSS, id, selector, property)
}

func (c *Client) Width(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyWidth, id, selector)
}

func (c *Client) Height(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyHeight, id, selector)
}

func (c *Client) Selected(ctx context.Context, selector string, state bool, id string) error {
	return c.send(ctx, driver.KeySelected, id, selector, state)
}

func (c *Client) Enabled(ctx context.Context, selector string, state bool, id string) error {
	return c.send(ctx, driver.KeyEnabled, id, selector, state)
}

func (c *Client) Attribute(ctx context.Context, selector, name, id string) error {
	return c.send(ctx, driver.KeyAttribute, id, selector, name)
}

func (c *Client) NumberOfElements(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyNumberOfElements, id, selector)
}

func (c *Client) NumberOfVisibleElements(ctx context.Context, selector, id string) error {
	return c.send(ctx, driver.KeyNumberOfVisibleElements, id, selector)
}

func (c *Client) Cookie(ctx context.Context, name, id string) error {
	return c.send(ctx, driver.KeyCookie, id, name)
}

func (c *Client) HTTPStatus(ctx context.Context, id string) error {
	return c.send(ctx, driver.KeyHTTPStatus, id)
}

func (c *Client) AlertText(ctx context.Context, id string) error {
	return c.send(ctx, driver.KeyAlertText, id)
}

func (c *Client) Title(ctx context.Context, id string) error {
	return c.send(ctx, driver.KeyTitle, id)
}

func (c *Client) URL(ctx context.Context, id string) error {
	return c.send(ctx, driver.KeyURL, id)
}
