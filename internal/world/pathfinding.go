package world

import (
	"container/heap"
	stdmath "math"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// pathNode is a node of the A* search.
type pathNode struct {
	cell   Cell
	g, f   float64
	parent *pathNode
	index  int // position in the heap
}

type pathHeap []*pathNode

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*h = old[:len(old)-1]
	return n
}

// neighbours in clockwise order starting north; odd entries are diagonal.
var neighbours = [8]Cell{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// canStep reports whether a walker may move from c by d. Diagonal steps
// need both adjacent orthogonal cells open, matching how wall sliding
// resolves one axis at a time.
func (g *Grid) canStep(c, d Cell) bool {
	if !g.IsWalkable(c.X+d.X, c.Y+d.Y) {
		return false
	}
	if d.X != 0 && d.Y != 0 {
		return g.IsWalkable(c.X+d.X, c.Y) && g.IsWalkable(c.X, c.Y+d.Y)
	}
	return true
}

// FindPath returns the shortest 8-way path from start to goal, both
// included, or nil when goal cannot be reached.
func (g *Grid) FindPath(start, goal Cell) []Cell {
	if !g.IsWalkable(start.X, start.Y) || !g.IsWalkable(goal.X, goal.Y) {
		return nil
	}

	open := &pathHeap{}
	closed := make([]bool, len(g.cells))
	nodes := make(map[int]*pathNode)

	first := &pathNode{cell: start, f: octile(start, goal)}
	heap.Push(open, first)
	nodes[g.key(start)] = first

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if cur.cell == goal {
			return cur.path()
		}
		closed[g.key(cur.cell)] = true

		for i, d := range neighbours {
			next := Cell{cur.cell.X + d.X, cur.cell.Y + d.Y}
			if !g.canStep(cur.cell, d) || closed[g.key(next)] {
				continue
			}

			cost := 1.0
			if i%2 == 1 {
				cost = stdmath.Sqrt2
			}
			gScore := cur.g + cost

			n, seen := nodes[g.key(next)]
			switch {
			case !seen:
				n = &pathNode{cell: next, g: gScore, f: gScore + octile(next, goal), parent: cur}
				nodes[g.key(next)] = n
				heap.Push(open, n)
			case gScore < n.g:
				n.f += gScore - n.g
				n.g = gScore
				n.parent = cur
				heap.Fix(open, n.index)
			}
		}
	}
	return nil
}

// Reachable returns every walkable cell connected to start, in breadth
// first order. It is empty when start is not walkable.
func (g *Grid) Reachable(start Cell) []Cell {
	if !g.IsWalkable(start.X, start.Y) {
		return nil
	}

	seen := make([]bool, len(g.cells))
	seen[g.key(start)] = true
	out := []Cell{start}
	for i := 0; i < len(out); i++ {
		c := out[i]
		for _, d := range neighbours {
			next := Cell{c.X + d.X, c.Y + d.Y}
			if g.canStep(c, d) && !seen[g.key(next)] {
				seen[g.key(next)] = true
				out = append(out, next)
			}
		}
	}
	return out
}

// Unreachable returns the walkable cells not connected to start.
func (g *Grid) Unreachable(start Cell) []Cell {
	seen := make([]bool, len(g.cells))
	for _, c := range g.Reachable(start) {
		seen[g.key(c)] = true
	}

	var out []Cell
	for i, s := range g.cells {
		if g.IsOpen(s) && !seen[i] {
			out = append(out, Cell{i % g.width, i / g.width})
		}
	}
	return out
}

func (g *Grid) key(c Cell) int {
	return c.Y*g.width + c.X
}

// octile is the 8-way distance heuristic.
func octile(a, b Cell) float64 {
	dx := stdmath.Abs(float64(b.X - a.X))
	dy := stdmath.Abs(float64(b.Y - a.Y))
	return stdmath.Sqrt2*min(dx, dy) + stdmath.Abs(dx-dy)
}

func (n *pathNode) path() []Cell {
	var out []Cell
	for ; n != nil; n = n.parent {
		out = append(out, n.cell)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
