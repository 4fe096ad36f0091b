package assert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/domspec/packages/driver"
	"github.com/abdul-hamid-achik/domspec/packages/report"
)

func TestChainStackLifecycle(t *testing.T) {
	a, _, _ := newReplayAsserter()

	sel, ok := a.ActiveSelector()
	assert.False(t, ok)
	assert.Empty(t, sel)

	a.Chain()
	_, ok = a.ActiveSelector()
	assert.False(t, ok, "plain chains carry no selector")

	a.Query("#list")
	sel, ok = a.ActiveSelector()
	require.True(t, ok)
	assert.Equal(t, "#list", sel)

	a.End()
	_, ok = a.ActiveSelector()
	assert.False(t, ok)

	a.End()
	_, ok = a.ActiveSelector()
	assert.False(t, ok)
}

func TestEndOnEmptyStackIsNoop(t *testing.T) {
	a, _, _ := newReplayAsserter()

	got := a.End()
	assert.Same(t, a, got)
	_, ok := a.ActiveSelector()
	assert.False(t, ok)
}

func TestQueryArgumentShiftEquivalence(t *testing.T) {
	runDirect := func() report.Event {
		a, rep, sink := newReplayAsserter()
		rep.Stub(driver.KeyNumberOfElements, "#nav", 4)
		a.NumberOfElements("#nav", 4, "four links")
		require.NoError(t, a.Run(context.Background()))
		require.Equal(t, 1, sink.Len())
		return sink.Events()[0]
	}
	runQueried := func() report.Event {
		a, rep, sink := newReplayAsserter()
		rep.Stub(driver.KeyNumberOfElements, "#nav", 4)
		a.Query("#nav").NumberOfElements(4, "four links").End()
		require.NoError(t, a.Run(context.Background()))
		require.Equal(t, 1, sink.Len())
		return sink.Events()[0]
	}

	assert.Equal(t, runDirect(), runQueried())
}

func TestNestedQueriesShadowAndRestore(t *testing.T) {
	a, rep, _ := newReplayAsserter()
	rep.Stub(driver.KeyExists, "#inner", "true")
	rep.Stub(driver.KeyExists, "#outer", "true")

	outer := a.Query("#outer")
	inner := outer.Query("#inner")

	sel, ok := a.ActiveSelector()
	require.True(t, ok)
	assert.Equal(t, "#inner", sel)

	inner.Exists("deepest first")
	inner.End()

	sel, ok = a.ActiveSelector()
	require.True(t, ok)
	assert.Equal(t, "#outer", sel)

	outer.Exists("then the outer")
	require.NoError(t, a.Run(context.Background()))

	cmds := rep.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "#inner", cmds[0].Subject)
	assert.Equal(t, "#outer", cmds[1].Subject)
}

func TestChainInsideQueryHidesSelector(t *testing.T) {
	a, _, _ := newReplayAsserter()

	q := a.Query("#list")
	q.Chain()

	_, ok := a.ActiveSelector()
	assert.False(t, ok, "a plain chain on top hides the query below")

	a.End()
	sel, ok := a.ActiveSelector()
	require.True(t, ok)
	assert.Equal(t, "#list", sel)
}

func TestQueryHandleKeepsItsSelector(t *testing.T) {
	// The handle binds its selector at creation; popping the frame
	// does not invalidate it.
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyText, "#headline", "Welcome")

	q := a.Query("#headline")
	a.End()

	q.Text("Welcome", "headline text")
	require.NoError(t, a.Run(context.Background()))

	cmds := rep.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "#headline", cmds[0].Subject)
	require.Equal(t, 1, sink.Len())
	assert.True(t, sink.Events()[0].Success)
}

func TestQueryBooleanAndValueSurface(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyVal, "#form input", "jane")
	rep.Stub(driver.KeyAttribute, "#form input", "text")
	rep.Stub(driver.KeyEnabled, "#form input", "true")

	a.Query("#form input").
		Val("jane").
		Attr("type", "text").
		Enabled("ready for input").
		End()
	require.NoError(t, a.Run(context.Background()))

	events := sink.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "val", events[0].Type)
	assert.Equal(t, "attribute", events[1].Type)
	assert.Equal(t, "enabled", events[2].Type)
	for _, e := range events {
		assert.True(t, e.Success)
	}
}

func TestQueryAttachmentsReachTheSameCheck(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyNumberOfVisibleElements, "#grid li", 7)

	a.Query("#grid li").
		NumberOfVisibleElements(nil).Between(5, 10, "a handful visible").
		End()
	require.NoError(t, a.Run(context.Background()))

	events := sink.Events()
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, "between", events[0].Type)
	assert.Equal(t, "a handful visible", events[0].Message)
}
