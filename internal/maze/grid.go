package maze

import (
	"strings"
	"sync"
)

// Grid dimensions are clamped to this range and forced odd, because the
// lattice encodes walls and passages on alternating rows/columns.
const (
	MinDim = 21
	MaxDim = 499
)

// CellState is the value of one grid cell.
//
//   - Wall blocks movement.
//   - Passage is an odd/odd lattice seed the generator has not visited yet.
//   - Open is a carved, walkable cell. It doubles as the "unlabeled" sentinel
//     for the labeling solver: distance labels written during a solve are
//     Open+1 and up, and are reset back to Open between solves.
type CellState int32

const (
	Wall CellState = iota
	Passage
	Open
)

// Mark is the solving-progress annotation consumed by renderers. It never
// affects the algorithms.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkFrontier
	MarkClosed
)

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Adjacent reports whether p and q share an edge (4-connected).
func (p Point) Adjacent(q Point) bool {
	return absDiff(p.Row, q.Row)+absDiff(p.Col, q.Col) == 1
}

// Grid is the rectangular cell array shared by the generator and the solvers.
// Cell states, path flags and progress marks live in flat row-major slices.
//
// The solver goroutine is the grid's sole mutator while a solve is in flight;
// the mutex only serializes its annotation writes against concurrent Snapshot
// readers (the render/watch side).
type Grid struct {
	rows, cols int

	mu    sync.RWMutex
	cells []CellState
	path  []bool
	marks []Mark
}

// NormalizeDim bumps an even dimension to the next odd value, then clamps to
// [MinDim, MaxDim]. Both bounds are odd so the result always is.
func NormalizeDim(n int) int {
	if n%2 == 0 {
		n++
	}
	if n < MinDim {
		return MinDim
	}
	if n > MaxDim {
		return MaxDim
	}
	return n
}

// NewGrid allocates a grid of all-wall cells. Dimensions are corrected via
// NormalizeDim; callers must consult Rows and Cols rather than their request.
func NewGrid(rows, cols int) *Grid {
	rows, cols = NormalizeDim(rows), NormalizeDim(cols)
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols),
		path:  make([]bool, rows*cols),
		marks: make([]Mark, rows*cols),
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Start is the fixed entry cell on the left edge.
func (g *Grid) Start() Point { return Point{Row: 1, Col: 0} }

// End mirrors Start on the opposite edge.
func (g *Grid) End() Point { return Point{Row: g.rows - 2, Col: g.cols - 1} }

func (g *Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *Grid) index(p Point) int { return p.Row*g.cols + p.Col }

func (g *Grid) point(i int) Point { return Point{Row: i / g.cols, Col: i % g.cols} }

func (g *Grid) at(p Point) CellState { return g.cells[g.index(p)] }

// IsWall reports whether a cell currently blocks movement. Callers must
// bounds-check first; out-of-bounds coordinates are never queried.
func (g *Grid) IsWall(p Point) bool { return g.at(p) == Wall }

func (g *Grid) IsPath(p Point) bool { return g.path[g.index(p)] }

func (g *Grid) setState(p Point, s CellState) {
	g.mu.Lock()
	g.cells[g.index(p)] = s
	g.mu.Unlock()
}

func (g *Grid) setPath(p Point) {
	g.mu.Lock()
	g.path[g.index(p)] = true
	g.mu.Unlock()
}

func (g *Grid) setMark(p Point, m Mark) {
	g.mu.Lock()
	g.marks[g.index(p)] = m
	g.mu.Unlock()
}

// resetAnnotations clears everything a solve writes; distance labels collapse
// back to the Open sentinel. The wall layout is untouched.
func (g *Grid) resetAnnotations() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, s := range g.cells {
		if s > Open {
			g.cells[i] = Open
		}
		g.path[i] = false
		g.marks[i] = MarkNone
	}
}

// Snapshot cell glyphs, also used by the ASCII rendering.
const (
	glyphWall     = '#'
	glyphOpen     = ' '
	glyphPath     = '*'
	glyphFrontier = ':'
	glyphClosed   = '.'
)

// Snapshot is the read-only cell view handed to renderers: one string per
// row, one glyph per cell. Path membership wins over progress marks.
type Snapshot struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Start Point    `json:"start"`
	End   Point    `json:"end"`
	Cells []string `json:"cells"`
}

func (g *Grid) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rows := make([]string, g.rows)
	var b strings.Builder
	for r := range g.rows {
		b.Reset()
		for c := range g.cols {
			i := r*g.cols + c
			switch {
			case g.path[i]:
				b.WriteByte(glyphPath)
			case g.cells[i] == Wall:
				b.WriteByte(glyphWall)
			case g.marks[i] == MarkFrontier:
				b.WriteByte(glyphFrontier)
			case g.marks[i] == MarkClosed:
				b.WriteByte(glyphClosed)
			default:
				b.WriteByte(glyphOpen)
			}
		}
		rows[r] = b.String()
	}
	return Snapshot{
		Rows:  g.rows,
		Cols:  g.cols,
		Start: g.Start(),
		End:   g.End(),
		Cells: rows,
	}
}

func (g *Grid) String() string {
	return strings.Join(g.Snapshot().Cells, "\n")
}
