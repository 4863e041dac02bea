package navigation

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/navgrid/vmath"
)

// Callback receives the simplified waypoints and outcome of a request
type Callback func(waypoints []vmath.Vec2F, success bool)

// PathRequest asks for a route between two world points
type PathRequest struct {
	ID       uuid.UUID
	Start    vmath.Vec2F
	Goal     vmath.Vec2F
	Callback Callback
}

// NewPathRequest stamps a fresh request ID
func NewPathRequest(start, goal vmath.Vec2F, cb Callback) PathRequest {
	return PathRequest{ID: uuid.New(), Start: start, Goal: goal, Callback: cb}
}

// PathResult is the outcome of one search
// On failure Waypoints and Cells are empty and Err holds the reason
type PathResult struct {
	ID        uuid.UUID
	Waypoints []vmath.Vec2F
	Cells     []Point // Full start→goal chain before simplification
	Success   bool
	Err       error
	Cost      int // Accumulated step cost plus entered-cell penalties
	Expanded  int // Cells removed from the open set
	Elapsed   time.Duration
	Callback  Callback
}

// Options tunes neighbor expansion
type Options struct {
	AllowDiagonal bool
	// Diagonal steps past a blocked orthogonal neighbor are permitted when true
	CornerCutting bool
}

// DefaultOptions allows diagonals with corner cutting
func DefaultOptions() Options {
	return Options{AllowDiagonal: true, CornerCutting: true}
}

// Option configures a Finder
type Option func(*Finder)

func WithOptions(o Options) Option {
	return func(f *Finder) { f.opts = o }
}

func WithDiagonal(allow bool) Option {
	return func(f *Finder) { f.opts.AllowDiagonal = allow }
}

func WithCornerCutting(allow bool) Option {
	return func(f *Finder) { f.opts.CornerCutting = allow }
}

func WithTracer(t Tracer) Option {
	return func(f *Finder) { f.tracer = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Finder) { f.logger = l }
}

// scratch holds per-search state indexed by flat cell index
type scratch struct {
	g      []int
	h      []int
	parent []int
	closed []bool
	open   *Heap[int]
}

func newScratch(size int) *scratch {
	s := &scratch{
		g:      make([]int, size),
		h:      make([]int, size),
		parent: make([]int, size),
		closed: make([]bool, size),
	}
	s.open = NewHeap(size, s.less, func(i int) int { return i })
	return s
}

// less orders by fCost, ties by hCost
func (s *scratch) less(a, b int) bool {
	fa := s.g[a] + s.h[a]
	fb := s.g[b] + s.h[b]
	if fa == fb {
		return s.h[a] < s.h[b]
	}
	return fa < fb
}

func (s *scratch) reset() {
	for i := range s.g {
		s.g[i] = 0
		s.h[i] = 0
		s.parent[i] = -1
		s.closed[i] = false
	}
	s.open.Reset()
}

// Finder runs A* searches over one grid
// A Finder reuses its scratch between searches and is not safe for concurrent use;
// create one Finder per goroutine over a shared grid
type Finder struct {
	grid   *Grid
	opts   Options
	tracer Tracer
	logger *slog.Logger
	s      *scratch
	nbuf   []*Cell
}

func NewFinder(grid *Grid, options ...Option) *Finder {
	f := &Finder{
		grid:   grid,
		opts:   DefaultOptions(),
		logger: slog.Default(),
		s:      newScratch(grid.Size()),
		nbuf:   make([]*Cell, 0, 8),
	}
	for _, o := range options {
		o(f)
	}
	return f
}

// Grid returns the grid searched by f
func (f *Finder) Grid() *Grid {
	return f.grid
}

// FindPath searches between the cells containing start and goal
func (f *Finder) FindPath(start, goal vmath.Vec2F) PathResult {
	return f.FindCells(f.grid.CellFromWorld(start), f.grid.CellFromWorld(goal))
}

// Request runs the search synchronously, then invokes the request callback
func (f *Finder) Request(req PathRequest) PathResult {
	res := f.FindPath(req.Start, req.Goal)
	res.ID = req.ID
	res.Callback = req.Callback
	if req.Callback != nil {
		req.Callback(res.Waypoints, res.Success)
	}
	return res
}

// FindCells runs A* from startCell to goalCell
func (f *Finder) FindCells(startCell, goalCell *Cell) PathResult {
	began := time.Now()
	var res PathResult

	if !startCell.Walkable || !goalCell.Walkable {
		res.Err = ErrInvalidEndpoint
		f.logger.Debug("path rejected",
			"start", startCell.Point(), "goal", goalCell.Point(), "error", res.Err)
		return res
	}

	g := f.grid
	s := f.s
	s.reset()

	startIdx := g.Index(startCell.X, startCell.Y)
	goalIdx := g.Index(goalCell.X, goalCell.Y)

	s.h[startIdx] = Distance(startCell, goalCell)
	s.open.Add(startIdx)
	f.trace(TraceStart, startIdx)
	f.trace(TraceEnd, goalIdx)

	found := false
	for s.open.Len() > 0 {
		cur := s.open.RemoveBest()
		s.closed[cur] = true
		res.Expanded++

		if cur == goalIdx {
			found = true
			break
		}
		if cur != startIdx {
			f.trace(TraceExplored, cur)
		}

		c := g.CellAt(cur)
		f.nbuf = g.Neighbors(c, f.opts.AllowDiagonal, f.nbuf[:0])
		for _, n := range f.nbuf {
			if !n.Walkable {
				continue
			}
			ni := n.Y*g.width + n.X
			if s.closed[ni] {
				continue
			}
			dx, dy := n.X-c.X, n.Y-c.Y
			step := CostCardinal
			if dx != 0 && dy != 0 {
				if !f.opts.CornerCutting && (!g.Walkable(c.X+dx, c.Y) || !g.Walkable(c.X, c.Y+dy)) {
					continue
				}
				step = CostDiagonal
			}

			tentative := s.g[cur] + step + n.Penalty
			inOpen := s.open.Contains(ni)
			if tentative < s.g[ni] || !inOpen {
				s.g[ni] = tentative
				s.h[ni] = Distance(n, goalCell)
				s.parent[ni] = cur
				if inOpen {
					s.open.Update(ni)
				} else {
					s.open.Add(ni)
					f.trace(TraceOpen, ni)
				}
				f.trace(TraceCost, ni)
			}
		}
	}

	res.Elapsed = time.Since(began)
	if !found {
		res.Err = ErrUnreachable
		f.logger.Debug("path not found",
			"start", startCell.Point(), "goal", goalCell.Point(),
			"expanded", res.Expanded, "elapsed", res.Elapsed)
		return res
	}

	res.Cells = f.retrace(startIdx, goalIdx)
	res.Waypoints = SimplifyPath(g, res.Cells)
	res.Cost = s.g[goalIdx]
	res.Success = true

	for _, p := range res.Cells {
		f.trace(TraceFinalPath, g.Index(p.X, p.Y))
	}

	f.logger.Debug("path found",
		"start", startCell.Point(), "goal", goalCell.Point(),
		"cost", res.Cost, "waypoints", len(res.Waypoints),
		"expanded", res.Expanded, "elapsed", res.Elapsed)
	return res
}

// retrace follows parent links from goal and returns the start→goal chain
func (f *Finder) retrace(startIdx, goalIdx int) []Point {
	var cells []Point
	for i := goalIdx; ; i = f.s.parent[i] {
		c := f.grid.CellAt(i)
		cells = append(cells, c.Point())
		if i == startIdx {
			break
		}
	}
	for l, r := 0, len(cells)-1; l < r; l, r = l+1, r-1 {
		cells[l], cells[r] = cells[r], cells[l]
	}
	return cells
}

func (f *Finder) trace(kind TraceKind, idx int) {
	if f.tracer == nil {
		return
	}
	c := f.grid.CellAt(idx)
	f.tracer.Trace(TraceEvent{Kind: kind, X: c.X, Y: c.Y, G: f.s.g[idx], H: f.s.h[idx]})
}
