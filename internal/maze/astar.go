package maze

import (
	"container/heap"
	"time"
)

// searchNode is a transient frontier record, distinct from the grid's cells.
// Parent references live in a side table keyed by cell index, not here.
type searchNode struct {
	cell Point
	g    int // cost from start, unit edges
	f    int // g + manhattan(cell, end)
	seq  int // insertion order, breaks f ties
}

type nodeHeap []*searchNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*searchNode)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// manhattan is admissible and consistent on a 4-connected unit-cost grid, so
// the first path the search finds to the end is optimal.
func manhattan(a, b Point) int {
	return absDiff(a.Row, b.Row) + absDiff(a.Col, b.Col)
}

// AStar is the informed search strategy.
type AStar struct{}

func (AStar) Solve(g *Grid, start, end Point, delay time.Duration) (*Result, error) {
	res, _, err := solveAStar(g, start, end, delay)
	return res, err
}

// astarTrace records the expansion order for tests.
type astarTrace struct {
	expanded []Point
}

func solveAStar(g *Grid, start, end Point, delay time.Duration) (*Result, *astarTrace, error) {
	began := time.Now()
	var (
		frontier nodeHeap
		seq      int
		closed   = make(map[int]bool)
		bestOpen = make(map[int]int) // lowest cost-so-far in the frontier, per cell
		parent   = make(map[int]int) // cell index -> predecessor on the best known path
		trace    = &astarTrace{}
	)
	push := func(p Point, cost int) {
		heap.Push(&frontier, &searchNode{
			cell: p,
			g:    cost,
			f:    cost + manhattan(p, end),
			seq:  seq,
		})
		seq++
		if old, ok := bestOpen[g.index(p)]; !ok || cost < old {
			bestOpen[g.index(p)] = cost
		}
		g.setMark(p, MarkFrontier)
	}

	push(start, 0)
	for frontier.Len() > 0 {
		if delay > 0 {
			time.Sleep(delay)
		}
		n := heap.Pop(&frontier).(*searchNode)
		i := g.index(n.cell)
		if closed[i] {
			// Stale duplicate left behind by a cheaper re-discovery.
			continue
		}
		closed[i] = true
		delete(bestOpen, i)
		g.setMark(n.cell, MarkClosed)
		trace.expanded = append(trace.expanded, n.cell)

		if n.cell == end {
			path := reconstruct(g, parent, start, end)
			return &Result{
				Path:    path,
				Length:  len(path),
				Elapsed: time.Since(began),
			}, trace, nil
		}

		for _, d := range latticeDirs {
			next := Point{Row: n.cell.Row + d.Row, Col: n.cell.Col + d.Col}
			if !g.InBounds(next) || g.IsWall(next) {
				continue
			}
			j := g.index(next)
			if closed[j] {
				continue
			}
			cost := n.g + 1
			if old, ok := bestOpen[j]; ok && old < cost {
				// Dominated: a strictly cheaper node for the same
				// cell is already waiting in the frontier.
				continue
			}
			parent[j] = i
			push(next, cost)
		}
	}
	return nil, trace, ErrNoPath
}

// reconstruct walks the parent table from end back to start, marking each
// cell as path, then reverses into start-to-end order.
func reconstruct(g *Grid, parent map[int]int, start, end Point) []Point {
	var rev []Point
	for p := end; ; {
		g.setPath(p)
		rev = append(rev, p)
		if p == start {
			break
		}
		p = g.point(parent[g.index(p)])
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}
	return rev
}
