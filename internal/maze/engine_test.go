package maze

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(Config{Strategy: "bogus"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestEngineRegenerateNormalizesDimensions(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(Config{})
	require.NoError(t, err)

	snap, err := e.Regenerate(20, 30, false)
	require.NoError(t, err)
	assert.Equal(t, 21, snap.Rows)
	assert.Equal(t, 31, snap.Cols)

	cfg := e.Config()
	assert.Equal(t, 21, cfg.Rows)
	assert.Equal(t, 31, cfg.Cols)
}

func TestEngineSolveAutoRegenerates(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(Config{})
	require.NoError(t, err)

	_, err = e.Snapshot()
	assert.ErrorIs(t, err, ErrNoMaze)

	res, err := e.Solve(0)
	require.NoError(t, err)
	assert.Greater(t, res.Length, 0)

	snap, err := e.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, MinDim, snap.Rows)
	assert.Equal(t, MinDim, snap.Cols)
}

func TestEngineResetIdempotent(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(Config{})
	require.NoError(t, err)
	e.Reseed(42)
	_, err = e.Regenerate(21, 21, false)
	require.NoError(t, err)

	first, err := e.Solve(0)
	require.NoError(t, err)
	assert.NotNil(t, e.Result())

	require.NoError(t, e.ResetAnnotations())
	require.NoError(t, e.ResetAnnotations())
	assert.Nil(t, e.Result())

	again, err := e.Solve(0)
	require.NoError(t, err)
	assert.Equal(t, first.Length, again.Length)
	assert.Equal(t, first.Path, again.Path)
}

func TestEngineRepeatedSolvesAgree(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(Config{Strategy: StrategyLabel})
	require.NoError(t, err)
	e.Reseed(7)
	_, err = e.Regenerate(21, 31, false)
	require.NoError(t, err)

	first, err := e.Solve(0)
	require.NoError(t, err)
	// a second solve clears prior annotations itself
	again, err := e.Solve(0)
	require.NoError(t, err)
	assert.Equal(t, first.Path, again.Path)
}

func TestEngineRejectsLabelingOnDifficult(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(Config{Strategy: StrategyLabel})
	require.NoError(t, err)
	_, err = e.Regenerate(21, 21, true)
	require.NoError(t, err)

	_, err = e.Solve(0)
	assert.ErrorIs(t, err, ErrStrategyDifficult)
}

func TestEngineBusyRejection(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(Config{})
	require.NoError(t, err)
	e.Reseed(99)
	_, err = e.Regenerate(45, 45, false)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := e.Solve(2 * time.Millisecond)
		done <- err
	}()

	require.Eventually(t, e.Busy, 5*time.Second, 100*time.Microsecond)

	_, err = e.Regenerate(21, 21, false)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = e.Solve(0)
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, e.ResetAnnotations(), ErrBusy)

	// snapshots stay readable while the solve is in flight
	snap, err := e.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 45, snap.Rows)

	require.NoError(t, <-done)
	assert.False(t, e.Busy())
}

func TestEngineEndToEnd(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(Config{})
	require.NoError(t, err)
	e.Reseed(42)
	snap, err := e.Regenerate(21, 21, false)
	require.NoError(t, err)

	// the wall layout is a pure function of the seed
	other, err := NewEngine(Config{})
	require.NoError(t, err)
	other.Reseed(42)
	otherSnap, err := other.Regenerate(21, 21, false)
	require.NoError(t, err)
	assert.Equal(t, snap.Cells, otherSnap.Cells)

	res, err := e.Solve(0)
	require.NoError(t, err)
	assert.Greater(t, res.Length, 0)
	assert.Greater(t, res.Elapsed, time.Duration(0))
	assert.Equal(t, res.Length, len(res.Path))
	assert.Equal(t, snap.Start, res.Path[0])
	assert.Equal(t, snap.End, res.Path[len(res.Path)-1])
	for i := 1; i < len(res.Path); i++ {
		assert.True(t, res.Path[i-1].Adjacent(res.Path[i]))
	}

	solved, err := e.Snapshot()
	require.NoError(t, err)
	marked := strings.Count(strings.Join(solved.Cells, ""), string(glyphPath))
	assert.Equal(t, res.Length, marked)
}
