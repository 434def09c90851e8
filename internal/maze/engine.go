package maze

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is the package logger. Binaries may tune its level and formatter.
var Log = logrus.New()

// Config holds an engine's maze parameters. Zero dimensions normalize to the
// minimum; an empty Strategy means StrategyAStar.
type Config struct {
	Rows      int
	Cols      int
	Difficult bool
	Strategy  Strategy
}

// Engine owns one Grid and orchestrates generation and solving against it.
// Regeneration and solving are mutually exclusive: while either mutates the
// grid, further mutation requests are rejected with ErrBusy (a no-op, not a
// queue), observable through Busy. Snapshots stay readable throughout.
type Engine struct {
	busy atomic.Bool

	mu     sync.Mutex // guards grid/result/rnd swaps
	cfg    Config
	rnd    *rand.Rand
	solver Solver
	grid   *Grid
	result *Result
}

// NewEngine seeds the engine's random source from ambient entropy. Returns
// ErrUnknownStrategy if cfg names a strategy it does not know.
func NewEngine(cfg Config) (*Engine, error) {
	solver, err := NewSolver(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		solver: solver,
		rnd: rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(),
			new(maphash.Hash).Sum64(),
		)),
	}, nil
}

// Reseed swaps the engine's random source for a deterministic one, for
// reproducible mazes. Call it before Regenerate, not during.
func (e *Engine) Reseed(seed uint64) {
	e.mu.Lock()
	e.rnd = rand.New(rand.NewPCG(seed, seed))
	e.mu.Unlock()
}

// Busy reports whether a regeneration or solve is currently mutating the
// grid. Callers whose request was rejected may poll it to retry.
func (e *Engine) Busy() bool { return e.busy.Load() }

func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Result returns the last successful solve, or nil.
func (e *Engine) Result() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Snapshot returns the read-only cell view of the current maze. Safe to call
// while a solve is in flight.
func (e *Engine) Snapshot() (Snapshot, error) {
	e.mu.Lock()
	g := e.grid
	e.mu.Unlock()
	if g == nil {
		return Snapshot{}, ErrNoMaze
	}
	return g.Snapshot(), nil
}

// Regenerate replaces the current maze with a fresh one. Dimensions are
// normalized; the snapshot reports the values actually used. Prior solve
// annotations and results are discarded.
func (e *Engine) Regenerate(rows, cols int, difficult bool) (Snapshot, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Snapshot{}, ErrBusy
	}
	defer e.busy.Store(false)

	e.mu.Lock()
	rnd := e.rnd
	e.mu.Unlock()

	g := NewGrid(rows, cols)
	Generate(g, difficult, rnd)

	e.mu.Lock()
	e.grid = g
	e.cfg.Rows, e.cfg.Cols, e.cfg.Difficult = g.rows, g.cols, difficult
	e.result = nil
	e.mu.Unlock()

	Log.WithFields(logrus.Fields{
		"rows":      g.rows,
		"cols":      g.cols,
		"difficult": difficult,
	}).Debug("maze regenerated")
	return g.Snapshot(), nil
}

// Solve runs the configured strategy against the current maze, regenerating
// one with the engine's defaults first if none exists. Prior annotations are
// cleared, so repeated solves of the same maze reproduce the same result.
// The delay is applied between solver steps for animation only.
func (e *Engine) Solve(delay time.Duration) (*Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.busy.Store(false)

	e.mu.Lock()
	g := e.grid
	cfg := e.cfg
	rnd := e.rnd
	e.mu.Unlock()

	if g == nil {
		g = NewGrid(cfg.Rows, cfg.Cols)
		Generate(g, cfg.Difficult, rnd)
		e.mu.Lock()
		e.grid = g
		e.cfg.Rows, e.cfg.Cols = g.rows, g.cols
		e.mu.Unlock()
	}
	if cfg.Strategy == StrategyLabel && cfg.Difficult {
		return nil, ErrStrategyDifficult
	}

	g.resetAnnotations()
	res, err := e.solver.Solve(g, g.Start(), g.End(), delay)
	if err != nil {
		if errors.Is(err, ErrNoPath) {
			// Generated mazes are connected by construction; reaching
			// this means the generator broke its spanning invariant.
			Log.WithFields(logrus.Fields{
				"rows":      cfg.Rows,
				"cols":      cfg.Cols,
				"difficult": cfg.Difficult,
				"strategy":  cfg.Strategy,
			}).Error("generated maze reported unsolvable")
		}
		return nil, err
	}

	e.mu.Lock()
	e.result = res
	e.mu.Unlock()

	Log.WithFields(logrus.Fields{
		"length":  res.Length,
		"elapsed": res.Elapsed,
	}).Debug("maze solved")
	return res, nil
}

// ResetAnnotations clears solver-added state (distance labels, path flags,
// progress marks) without discarding the wall layout, enabling repeated
// solves or re-animation over the same maze.
func (e *Engine) ResetAnnotations() error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer e.busy.Store(false)

	e.mu.Lock()
	g := e.grid
	e.mu.Unlock()
	if g == nil {
		return ErrNoMaze
	}
	g.resetAnnotations()

	e.mu.Lock()
	e.result = nil
	e.mu.Unlock()
	return nil
}
