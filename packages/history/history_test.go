package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestAppendRecentRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	started := time.Now().Add(-time.Minute)
	run := Run{
		Scenario:     "storefront smoke",
		Expectations: 12,
		Failures:     2,
		Duration:     1500 * time.Millisecond,
		StartedAt:    started,
	}
	require.NoError(t, s.Append(ctx, run, nil))

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "storefront smoke", got.Scenario)
	assert.Equal(t, 12, got.Expectations)
	assert.Equal(t, 2, got.Failures)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.WithinDuration(t, started, got.StartedAt, time.Second)
	assert.NotZero(t, got.ID)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, s.Append(ctx, Run{
			Scenario:  name,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}, nil))
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "third", runs[0].Scenario)
	assert.Equal(t, "second", runs[1].Scenario)
}

func TestFailuresRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	failures := []Failure{
		{Type: "is", Message: "four teasers", Expected: "4", Value: "3"},
		{Type: "title", Message: "", Expected: "Home", Value: "Error"},
	}
	require.NoError(t, s.Append(ctx, Run{Scenario: "x", Failures: 2, StartedAt: time.Now()}, failures))

	runs, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got, err := s.FailuresFor(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, failures, got)
}

func TestRecentOnEmptyStore(t *testing.T) {
	s := openStore(t)

	runs, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "history.db"))
	assert.Error(t, err)
}
