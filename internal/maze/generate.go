package maze

import "math/rand/v2"

// Neighbor offsets in up, right, down, left order. Carving and solving both
// iterate these; the generator rotates the starting index per step.
var latticeDirs = [4]Point{
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
}

// Generate builds a perfect maze over g's odd/odd lattice, force-opens the
// start and end cells, and, when difficult, opens extra walls so the maze
// contains cycles. Previous cell state is discarded.
func Generate(g *Grid, difficult bool, rnd *rand.Rand) {
	Carve(g, rnd)
	g.cells[g.index(g.Start())] = Open
	g.cells[g.index(g.End())] = Open
	if difficult {
		Perturb(g, rnd)
	}
}

// Carve runs a randomized iterative backtracker: every odd/odd cell becomes a
// passage seed, and walls between lattice neighbors at distance 2 are opened
// along a depth-first walk driven by an explicit stack. One neighbor is
// carved per pop, which keeps the walk equivalent to depth-first recursion
// without risking stack blowups on large grids.
func Carve(g *Grid, rnd *rand.Rand) {
	for i := range g.cells {
		g.cells[i] = Wall
		g.path[i] = false
		g.marks[i] = MarkNone
	}
	for r := 1; r < g.rows; r += 2 {
		for c := 1; c < g.cols; c += 2 {
			g.cells[r*g.cols+c] = Passage
		}
	}

	first := Point{
		Row: 1 + 2*rnd.IntN(g.rows/2),
		Col: 1 + 2*rnd.IntN(g.cols/2),
	}
	g.cells[g.index(first)] = Open
	stack := []Point{first}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Random starting offset, fixed stride: different runs explore
		// differently even though the neighbor list itself is fixed.
		r := rnd.IntN(4)
		for i := range 4 {
			d := latticeDirs[(i+r)%4]
			next := Point{Row: cur.Row + 2*d.Row, Col: cur.Col + 2*d.Col}
			if !g.InBounds(next) || g.at(next) != Passage {
				continue
			}
			mid := Point{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			g.cells[g.index(next)] = Open
			g.cells[g.index(mid)] = Open
			stack = append(stack, cur, next)
			break
		}
	}
}

// Perturb opens up to max(rows, cols) interior wall cells, each adding a
// short-circuit edge (a cycle) to the spanning tree. Returns the cells it
// opened.
func Perturb(g *Grid, rnd *rand.Rand) []Point {
	n := max(g.rows, g.cols)
	opened := make([]Point, 0, n)
	for range n {
		if p, ok := perturbOnce(g, rnd); ok {
			opened = append(opened, p)
		}
	}
	return opened
}

// perturbOnce samples interior cells until it finds a legally breakable wall
// and opens it. Retries are capped at rows*cols so a pathological grid skips
// the perturbation instead of spinning forever.
func perturbOnce(g *Grid, rnd *rand.Rand) (Point, bool) {
	for range g.rows * g.cols {
		p := Point{
			Row: 1 + rnd.IntN(g.rows-2),
			Col: 1 + rnd.IntN(g.cols-2),
		}
		if !breakable(g, p) {
			continue
		}
		g.cells[g.index(p)] = Open
		return p, true
	}
	return Point{}, false
}

// breakable reports whether wall cell p may be opened by a perturbation. p
// must be off the outer border (guaranteed by the caller's sampling range).
// Legal candidates are walls with exactly two of their four axis-neighbors
// also walls, excluding two cases: exactly one vertical wall-neighbor marks a
// dead-end stub or the top of a T, and even/even cells belong to the base
// lattice and are never openable.
func breakable(g *Grid, p Point) bool {
	if p.Row%2 == 0 && p.Col%2 == 0 {
		return false
	}
	if g.at(p) != Wall {
		return false
	}
	walls, vertical := 0, 0
	for _, d := range latticeDirs {
		q := Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.at(q) == Wall {
			walls++
			if d.Col == 0 {
				vertical++
			}
		}
	}
	return walls == 2 && vertical != 1
}
