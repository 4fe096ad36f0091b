package correlate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/domspec/packages/compare"
	"github.com/abdul-hamid-achik/domspec/packages/driver"
	"github.com/abdul-hamid-achik/domspec/packages/report"
)

func TestRouter_ConsumedHandlerFiresOnce(t *testing.T) {
	r := NewRouter()

	calls := 0
	r.Observe("id-1", func(driver.Message) bool {
		calls++
		return true
	})

	msg := driver.Message{Key: driver.KeyExists, ID: "id-1", Value: "true"}
	assert.Equal(t, 1, r.Dispatch(msg))
	assert.Equal(t, 0, r.Pending())

	// Double delivery of the same message: the handler is gone.
	assert.Equal(t, 0, r.Dispatch(msg))
	assert.Equal(t, 1, calls)
}

func TestRouter_UnconsumedHandlerStaysRegistered(t *testing.T) {
	sink := report.NewCollector()
	reg := NewRegistry(&Counters{}, sink)
	r := NewRouter()

	c := reg.Register(driver.KeyText, "text", compare.Equals, "hi", "#msg", "")
	r.Observe(c.ID, reg.Listener(c))

	// Right identifier, wrong key: the listener declines and stays.
	assert.Equal(t, 0, r.Dispatch(driver.Message{Key: driver.KeyWidth, ID: c.ID, Value: 10}))
	assert.Equal(t, 1, r.Pending())

	assert.Equal(t, 1, r.Dispatch(driver.Message{Key: driver.KeyText, ID: c.ID, Value: "hi"}))
	assert.Equal(t, 0, r.Pending())
	assert.Equal(t, 1, sink.Len())
}

func TestRouter_SeveralHandlersShareOneIdentifier(t *testing.T) {
	r := NewRouter()

	var first, second int
	r.Observe("id-1", func(driver.Message) bool {
		first++
		return true
	})
	r.Observe("id-1", func(driver.Message) bool {
		second++
		return true
	})

	assert.Equal(t, 2, r.Dispatch(driver.Message{Key: driver.KeyTitle, ID: "id-1", Value: "Home"}))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 0, r.Pending())
}

func TestRouter_UnmatchedMessageDropped(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, 0, r.Dispatch(driver.Message{Key: driver.KeyURL, ID: "nobody", Value: "x"}))
}

func TestRouter_ObserveDuringDispatchIsPreserved(t *testing.T) {
	r := NewRouter()

	lateCalls := 0
	r.Observe("id-1", func(driver.Message) bool {
		// Registering while this dispatch runs must not lose the
		// new handler or run it against the in-flight message.
		r.Observe("id-1", func(driver.Message) bool {
			lateCalls++
			return true
		})
		return true
	})

	msg := driver.Message{Key: driver.KeyText, ID: "id-1", Value: "v"}
	assert.Equal(t, 1, r.Dispatch(msg))
	assert.Equal(t, 0, lateCalls)
	assert.Equal(t, 1, r.Pending())

	assert.Equal(t, 1, r.Dispatch(msg))
	assert.Equal(t, 1, lateCalls)
	assert.Equal(t, 0, r.Pending())
}

func TestRouter_QuiesceWaitsForDrain(t *testing.T) {
	r := NewRouter()
	r.Observe("id-1", func(driver.Message) bool { return true })

	go func() {
		time.Sleep(10 * time.Millisecond)
		r.Dispatch(driver.Message{Key: driver.KeyExists, ID: "id-1", Value: "true"})
	}()

	require.NoError(t, r.Quiesce(context.Background()))
	assert.Equal(t, 0, r.Pending())
}

func TestRouter_QuiesceImmediateWhenIdle(t *testing.T) {
	r := NewRouter()
	assert.NoError(t, r.Quiesce(context.Background()))
}

func TestRouter_QuiesceHonorsContext(t *testing.T) {
	r := NewRouter()
	r.Observe("never-answered", func(driver.Message) bool { return true })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Quiesce(ctx), context.Canceled)
	assert.Equal(t, 1, r.Pending())
}
