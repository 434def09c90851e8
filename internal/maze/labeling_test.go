package maze

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelingOnCorridor(t *testing.T) {
	t.Parallel()

	g, want := corridorGrid()
	res, err := Labeling{}.Solve(g, g.Start(), g.End(), 0)
	require.NoError(t, err)
	assert.Equal(t, want, res.Length)
	assertWellFormedPath(t, g, res.Path)
}

func TestLabelingShortestOnTreeMaze(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(21, 22))
	g := NewGrid(31, 31)
	Generate(g, false, rnd)

	res, err := Labeling{}.Solve(g, g.Start(), g.End(), 0)
	require.NoError(t, err)
	want := bfsDistance(g, g.Start(), g.End()) + 1
	assert.Equal(t, want, res.Length,
		"a tree maze has a unique path, so the labeling result is shortest")
	assertWellFormedPath(t, g, res.Path)
}

func TestLabelsIncrementAlongPath(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(23, 24))
	g := NewGrid(21, 21)
	Generate(g, false, rnd)

	res, err := Labeling{}.Solve(g, g.Start(), g.End(), 0)
	require.NoError(t, err)
	assert.Equal(t, Open+1, g.at(res.Path[0]))
	for i := 1; i < len(res.Path); i++ {
		assert.Equal(t, g.at(res.Path[i-1])+1, g.at(res.Path[i]),
			"labels along the unique path must increase by one per step")
	}
}

func TestSolversAgreeOnTreeMaze(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(25, 26))
	g := NewGrid(31, 41)
	Generate(g, false, rnd)

	astar, err := AStar{}.Solve(g, g.Start(), g.End(), 0)
	require.NoError(t, err)

	g.resetAnnotations()
	label, err := Labeling{}.Solve(g, g.Start(), g.End(), 0)
	require.NoError(t, err)

	assert.Equal(t, astar.Length, label.Length)
	assert.Equal(t, astar.Path, label.Path,
		"a tree maze has exactly one path, so both strategies must return it")
}

func TestLabelingNoPath(t *testing.T) {
	t.Parallel()

	g := NewGrid(21, 21)
	g.cells[g.index(g.Start())] = Open
	g.cells[g.index(Point{Row: 1, Col: 1})] = Open
	g.cells[g.index(g.End())] = Open

	_, err := Labeling{}.Solve(g, g.Start(), g.End(), 0)
	assert.ErrorIs(t, err, ErrNoPath)
}
