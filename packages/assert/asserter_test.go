package assert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abdul-hamid-achik/domspec/packages/driver"
	"github.com/abdul-hamid-achik/domspec/packages/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newReplayAsserter(opts ...Option) (*Asserter, *driver.Replay, *report.Collector) {
	rep := driver.NewReplay()
	sink := report.NewCollector()
	a := New(rep, append([]Option{WithSink(sink)}, opts...)...)
	return a, rep, sink
}

func TestExistsEndToEnd(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyExists, "#nav", "true")

	a.Exists("#nav", "nav present")
	require.NoError(t, a.Run(context.Background()))

	events := sink.Events()
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, "exists", events[0].Type)
	assert.Equal(t, "nav present", events[0].Message)

	expectations, failures := a.Totals()
	assert.Equal(t, 1, expectations)
	assert.Equal(t, 0, failures)
	assert.Equal(t, 0, a.Pending())
}

func TestCountWithAttachedEqualityEndToEnd(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyNumberOfElements, "#teaser", 3)

	a.NumberOfElements("#teaser", nil).Is(4, "four teasers")
	require.NoError(t, a.Run(context.Background()))

	// The fetch itself is suppressed (no expected value), so the
	// attachment's verdict is the only report.
	events := sink.Events()
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, 4, events[0].Expected)
	assert.Equal(t, 3, events[0].Value)
	assert.Equal(t, "is", events[0].Type)
	assert.Equal(t, "four teasers", events[0].Message)

	expectations, failures := a.Totals()
	assert.Equal(t, 1, expectations)
	assert.Equal(t, 1, failures)
}

func TestPrimaryAndAttachmentBothReport(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyWidth, "#box", 150)

	a.Width("#box", 150, "exact width").Gt(100, "wide enough")
	require.NoError(t, a.Run(context.Background()))

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "width", events[0].Type)
	assert.True(t, events[0].Success)
	assert.Equal(t, "gt", events[1].Type)
	assert.True(t, events[1].Success)

	expectations, failures := a.Totals()
	assert.Equal(t, 2, expectations)
	assert.Equal(t, 0, failures)
}

func TestValWithoutExpectedStillCompares(t *testing.T) {
	// val is not a presence kind: omitting the expected value does
	// not suppress, it compares nil against the answer and fails.
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyVal, "#field", "typed text")

	a.Val("#field", nil)
	require.NoError(t, a.Run(context.Background()))

	events := sink.Events()
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)

	_, failures := a.Totals()
	assert.Equal(t, 1, failures)
}

func TestCommandsIssueInDeclarationOrder(t *testing.T) {
	a, rep, _ := newReplayAsserter()
	rep.Stub(driver.KeyExists, "#nav", "true")
	rep.Stub(driver.KeyTitle, "", "Home")
	rep.Stub(driver.KeyWidth, "#box", 100)

	a.Exists("#nav")
	a.Title("Home")
	a.Width("#box", 100)
	require.NoError(t, a.Run(context.Background()))

	cmds := rep.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, driver.KeyExists, cmds[0].Key)
	assert.Equal(t, driver.KeyTitle, cmds[1].Key)
	assert.Equal(t, driver.KeyWidth, cmds[2].Key)
}

func TestBooleanChecksAcceptStringAndBoolAnswers(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		success bool
	}{
		{name: "string true", value: "true", success: true},
		{name: "bool true", value: true, success: true},
		{name: "string false", value: "false", success: false},
		{name: "bool false", value: false, success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, rep, sink := newReplayAsserter()
			rep.Stub(driver.KeyVisible, "#hero", tt.value)

			a.Visible("#hero")
			require.NoError(t, a.Run(context.Background()))

			events := sink.Events()
			require.Len(t, events, 1)
			assert.Equal(t, tt.success, events[0].Success)
		})
	}
}

func TestNegatedBooleanChecks(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyExists, "#ghost", "false")
	rep.Stub(driver.KeyVisible, "#hidden", false)

	a.DoesntExist("#ghost", "no ghost")
	a.NotVisible("#hidden")
	require.NoError(t, a.Run(context.Background()))

	events := sink.Events()
	require.Len(t, events, 2)
	assert.True(t, events[0].Success)
	assert.Equal(t, "doesntExist", events[0].Type)
	assert.True(t, events[1].Success)
	assert.Equal(t, "notVisible", events[1].Type)
}

func TestSelectedAndEnabledCarryStateFlag(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeySelected, "#opt", "true")
	rep.Stub(driver.KeyEnabled, "#submit", "false")

	a.Selected("#opt")
	a.Disabled("#submit")
	require.NoError(t, a.Run(context.Background()))

	events := sink.Events()
	require.Len(t, events, 2)
	assert.True(t, events[0].Success)
	assert.Equal(t, "selected", events[0].Type)
	assert.True(t, events[1].Success)
	assert.Equal(t, "disabled", events[1].Type)
}

func TestStrictResolutionGatesIssuance(t *testing.T) {
	a, rep, sink := newReplayAsserter(WithStrictResolution())

	a.Exists("#nav", "nav present")
	a.Title("Home", "landing title")

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(context.Background())
	}()

	require.Eventually(t, func() bool {
		return len(rep.Commands()) == 1
	}, time.Second, time.Millisecond)

	// The second command must be held back until the first answer
	// lands.
	time.Sleep(20 * time.Millisecond)
	require.Len(t, rep.Commands(), 1)

	a.Dispatch(driver.Message{Key: driver.KeyExists, ID: rep.Commands()[0].ID, Value: "true"})

	require.Eventually(t, func() bool {
		return len(rep.Commands()) == 2
	}, time.Second, time.Millisecond)

	a.Dispatch(driver.Message{Key: driver.KeyTitle, ID: rep.Commands()[1].ID, Value: "Home"})
	require.NoError(t, <-errCh)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "exists", events[0].Type)
	assert.Equal(t, "title", events[1].Type)
}

func TestStrictResolutionWithSynchronousDriver(t *testing.T) {
	// A driver that answers during issuance must not deadlock the
	// strict wait.
	a, rep, sink := newReplayAsserter(WithStrictResolution())
	rep.Stub(driver.KeyExists, "#nav", "true")
	rep.Stub(driver.KeyURL, "", "https://example.test/")

	a.Exists("#nav")
	a.URL("https://example.test/")
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 2, sink.Len())
	assert.Equal(t, 0, a.Pending())
}

func TestSettleWaitsOutLateAnswers(t *testing.T) {
	a, rep, sink := newReplayAsserter()

	a.Exists("#nav", "nav present")
	require.NoError(t, a.Run(context.Background()))
	require.Equal(t, 1, a.Pending())

	go func() {
		time.Sleep(10 * time.Millisecond)
		a.Dispatch(driver.Message{Key: driver.KeyExists, ID: rep.Commands()[0].ID, Value: "true"})
	}()

	require.NoError(t, a.Settle(context.Background()))
	assert.Equal(t, 1, sink.Len())
}

func TestDeferredAnswersResolveOnFlush(t *testing.T) {
	rep := driver.NewReplay(driver.WithDeferredAnswers())
	rep.Stub(driver.KeyExists, "#nav", "true")
	rep.Stub(driver.KeyTitle, "", "Home")
	sink := report.NewCollector()
	a := New(rep, WithSink(sink))

	a.Exists("#nav", "nav present")
	a.Title("Home", "title matches")
	require.NoError(t, a.Run(context.Background()))

	// Whole batch issued, nothing answered yet.
	require.Equal(t, 2, a.Pending())
	require.Equal(t, 0, sink.Len())

	rep.Flush()
	require.NoError(t, a.Settle(context.Background()))

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "exists", events[0].Type)
	assert.Equal(t, "title", events[1].Type)
	assert.True(t, events[0].Success)
	assert.True(t, events[1].Success)
}

func TestSettleBlocksOnUnansweredCheck(t *testing.T) {
	a, _, _ := newReplayAsserter()

	a.Exists("#never-answered")
	require.NoError(t, a.Run(context.Background()))
	require.Equal(t, 1, a.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Settle(ctx), context.DeadlineExceeded)
	// Still pending; the gap is the caller's to notice.
	assert.Equal(t, 1, a.Pending())
}

type failingDriver struct {
	*driver.Replay
}

func (failingDriver) Exists(context.Context, string, string) error {
	return errors.New("connection lost")
}

func TestDriverErrorSurfacesFromRun(t *testing.T) {
	sink := report.NewCollector()
	a := New(failingDriver{driver.NewReplay()}, WithSink(sink))

	a.Exists("#nav")
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue exists")
	assert.Contains(t, err.Error(), "connection lost")

	// Infrastructure failure, not an assertion outcome.
	expectations, failures := a.Totals()
	assert.Equal(t, 0, expectations)
	assert.Equal(t, 0, failures)
	assert.Equal(t, 0, sink.Len())
}

func TestUnmatchedAnswerIsDropped(t *testing.T) {
	a, rep, sink := newReplayAsserter()
	rep.Stub(driver.KeyExists, "#nav", "true")

	a.Exists("#nav")
	require.NoError(t, a.Run(context.Background()))

	// An answer nobody asked for changes nothing.
	a.Dispatch(driver.Message{Key: driver.KeyTitle, ID: "stray", Value: "Home"})

	assert.Equal(t, 1, sink.Len())
	expectations, _ := a.Totals()
	assert.Equal(t, 1, expectations)
}
