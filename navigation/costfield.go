package navigation

// Flow direction sentinels; valid directions index DirVectors
const (
	DirNone   int8 = -1 // Blocked or unreachable
	DirTarget int8 = -2 // At target cell
)

// Unreachable marks cells with no route to the target
const Unreachable = 1<<31 - 1

// CostField stores exact cost-to-target for every cell and the steepest-descent step
// Costs use the same step weights, entered-cell penalties and diagonal rules as Finder,
// so Distances at a start cell equals the optimal path cost from there
type CostField struct {
	Width, Height int
	Directions    []int8 // Per-cell direction index, DirNone if blocked
	Distances     []int  // Cost from cell to target, Unreachable if none

	TargetX, TargetY int
	Valid            bool

	opts Options
	heap *Heap[int]
}

// NewCostField creates an empty field sized for g
func NewCostField(g *Grid, opts Options) *CostField {
	size := g.Size()
	f := &CostField{
		Width:      g.Width(),
		Height:     g.Height(),
		Directions: make([]int8, size),
		Distances:  make([]int, size),
		TargetX:    -1,
		TargetY:    -1,
		opts:       opts,
	}
	f.heap = NewHeap(size,
		func(a, b int) bool { return f.Distances[a] < f.Distances[b] },
		func(i int) int { return i },
	)
	return f
}

// Direction returns flow direction at cell, DirNone if invalid/blocked
func (f *CostField) Direction(x, y int) int8 {
	if !f.Valid || x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return DirNone
	}
	return f.Directions[y*f.Width+x]
}

// Cost returns cost from (x, y) to the target, -1 if unreachable
func (f *CostField) Cost(x, y int) int {
	if !f.Valid || x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return -1
	}
	d := f.Distances[y*f.Width+x]
	if d >= Unreachable {
		return -1
	}
	return d
}

// Reachable counts cells with a route to the target
func (f *CostField) Reachable() int {
	n := 0
	for _, d := range f.Distances {
		if d < Unreachable {
			n++
		}
	}
	return n
}

// stepAllowed applies diagonal and corner-cutting rules for a move from (x, y) in dir
func stepAllowed(g *Grid, opts Options, x, y, dir int) bool {
	v := DirVectors[dir]
	if dir%2 == 0 {
		return true
	}
	if !opts.AllowDiagonal {
		return false
	}
	if opts.CornerCutting {
		return true
	}
	return g.Walkable(x+v[0], y) && g.Walkable(x, y+v[1])
}

// Compute runs Dijkstra outward from the target cell, then derives flow directions
//
// Phase 1: reverse relaxation; moving n→m costs step + m.Penalty, so expanding m
// offers its neighbors dist(m) + step + m.Penalty
// Phase 2: per-cell steepest descent over allowed steps
func (f *CostField) Compute(g *Grid, targetX, targetY int) {
	if !g.InBounds(targetX, targetY) || g.Width() != f.Width || g.Height() != f.Height {
		f.Valid = false
		return
	}
	w := f.Width

	for i := range f.Distances {
		f.Directions[i] = DirNone
		f.Distances[i] = Unreachable
	}
	f.heap.Reset()

	targetIdx := targetY*w + targetX
	if g.Walkable(targetX, targetY) {
		f.Distances[targetIdx] = 0
		f.heap.Add(targetIdx)
	}

	for f.heap.Len() > 0 {
		cur := f.heap.RemoveBest()
		m := g.CellAt(cur)
		enter := f.Distances[cur] + m.Penalty

		for dir, v := range DirVectors {
			nx, ny := m.X-v[0], m.Y-v[1]
			if !g.Walkable(nx, ny) || !stepAllowed(g, f.opts, nx, ny, dir) {
				continue
			}
			nIdx := ny*w + nx
			newDist := enter + dirCosts[dir]
			if newDist < f.Distances[nIdx] {
				f.Distances[nIdx] = newDist
				f.heap.Add(nIdx)
			}
		}
	}

	if f.Distances[targetIdx] == 0 {
		f.Directions[targetIdx] = DirTarget
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if f.Distances[idx] >= Unreachable || idx == targetIdx {
				continue
			}
			best := DirNone
			bestCost := f.Distances[idx]
			for dir, v := range DirVectors {
				nx, ny := x+v[0], y+v[1]
				if !g.Walkable(nx, ny) || !stepAllowed(g, f.opts, x, y, dir) {
					continue
				}
				nIdx := ny*w + nx
				if f.Distances[nIdx] >= Unreachable {
					continue
				}
				c := f.Distances[nIdx] + dirCosts[dir] + g.CellAt(nIdx).Penalty
				if c <= bestCost {
					bestCost = c
					best = int8(dir)
				}
			}
			f.Directions[idx] = best
		}
	}

	f.TargetX = targetX
	f.TargetY = targetY
	f.Valid = true
}
