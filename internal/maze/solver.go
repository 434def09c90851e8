package maze

import (
	"errors"
	"time"
)

// Strategy selects a path-finding implementation.
type Strategy string

const (
	// StrategyAStar is the informed search with an ordered frontier. It
	// finds a shortest path on any maze, cyclic or not.
	StrategyAStar Strategy = "astar"
	// StrategyLabel is the depth-first distance-labeling search. Its
	// backward reconstruction relies on the maze being a tree, so the
	// engine refuses to pair it with difficult mazes.
	StrategyLabel Strategy = "label"
)

var (
	// ErrNoPath means the search exhausted its frontier without reaching
	// the end cell. Generated mazes are connected by construction, so on
	// those this signals a generator invariant violation.
	ErrNoPath = errors.New("no path between start and end")

	// ErrBusy rejects a regenerate/solve/reset request that arrived while
	// a solve is in flight.
	ErrBusy = errors.New("a solve is in flight")

	ErrNoMaze            = errors.New("no maze has been generated")
	ErrStrategyDifficult = errors.New("distance labeling requires a non-difficult maze")
	ErrUnknownStrategy   = errors.New("unknown solver strategy")
)

// Result reports a successful solve. Path runs from start to end inclusive.
type Result struct {
	Path    []Point
	Length  int
	Elapsed time.Duration
}

// Solver finds a path from start to end over the grid's open cells and
// annotates the grid with progress marks and the final path. The delay is
// applied between frontier pops for animation only; it must not change the
// outcome or the expansion order.
type Solver interface {
	Solve(g *Grid, start, end Point, delay time.Duration) (*Result, error)
}

func NewSolver(s Strategy) (Solver, error) {
	switch s {
	case StrategyAStar, "":
		return AStar{}, nil
	case StrategyLabel:
		return Labeling{}, nil
	}
	return nil, ErrUnknownStrategy
}
