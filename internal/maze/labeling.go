package maze

import "time"

// Labeling is the depth-first distance-labeling strategy. It stamps each
// visited cell with its distance from the start (labels start at Open+1,
// Open itself being the "unlabeled" sentinel), advancing one branch at a
// time and backtracking via an explicit stack, mirroring the generator's
// carving pattern. Reconstruction walks from the end toward strictly
// decreasing labels, which is guaranteed to reach the start only because a
// perfect maze has exactly one path between any two cells.
type Labeling struct{}

func (Labeling) Solve(g *Grid, start, end Point, delay time.Duration) (*Result, error) {
	began := time.Now()

	g.setState(start, Open+1)
	stack := []Point{start}
	found := false

	for len(stack) > 0 && !found {
		if delay > 0 {
			time.Sleep(delay)
		}
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d := g.at(cur)
		g.setMark(cur, MarkClosed)

		for _, dir := range latticeDirs {
			next := Point{Row: cur.Row + dir.Row, Col: cur.Col + dir.Col}
			if !g.InBounds(next) || g.at(next) != Open {
				continue
			}
			g.setState(next, d+1)
			if next == end {
				found = true
				break
			}
			g.setMark(next, MarkFrontier)
			stack = append(stack, cur, next)
			break
		}
	}

	if !found {
		return nil, ErrNoPath
	}
	path := walkLabelsBack(g, start, end)
	if path == nil {
		return nil, ErrNoPath
	}
	return &Result{
		Path:    path,
		Length:  len(path),
		Elapsed: time.Since(began),
	}, nil
}

// walkLabelsBack steps from end toward start, each time moving to the
// neighbor with the smallest label above the Open sentinel that is also below
// the current cell's own label, marking path cells along the way. Returns nil
// if the walk stalls, which cannot happen on a tree maze.
func walkLabelsBack(g *Grid, start, end Point) []Point {
	var rev []Point
	cur := end
	for cur != start {
		g.setPath(cur)
		rev = append(rev, cur)

		next := cur
		best := g.at(cur)
		for _, d := range latticeDirs {
			q := Point{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if !g.InBounds(q) {
				continue
			}
			if l := g.at(q); l > Open && l < best {
				best = l
				next = q
			}
		}
		if next == cur {
			return nil
		}
		cur = next
	}
	g.setPath(start)
	rev = append(rev, start)

	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}
	return rev
}
