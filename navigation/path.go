package navigation

import (
	"github.com/lixenwraith/navgrid/vmath"
)

// SimplifyPath keeps the cells where the step direction changes, plus the goal
// Each straight run contributes one waypoint; a single-cell chain yields the goal center
func SimplifyPath(g *Grid, cells []Point) []vmath.Vec2F {
	if len(cells) == 0 {
		return nil
	}
	var waypoints []vmath.Vec2F
	for i := 1; i < len(cells)-1; i++ {
		in := Point{cells[i].X - cells[i-1].X, cells[i].Y - cells[i-1].Y}
		out := Point{cells[i+1].X - cells[i].X, cells[i+1].Y - cells[i].Y}
		if in != out {
			waypoints = append(waypoints, g.WorldFromCell(cells[i].X, cells[i].Y))
		}
	}
	last := cells[len(cells)-1]
	return append(waypoints, g.WorldFromCell(last.X, last.Y))
}

// Path is a built route with turn boundaries; immutable once constructed
type Path struct {
	LookPoints      []vmath.Vec2F
	TurnBoundaries  []vmath.Line
	FinishLineIndex int
	SlowDownIndex   int
}

// NewPath builds turn boundaries for waypoints as approached from start
// Each boundary sits turnDst before its waypoint, except the last which is the finish line
// through the goal itself. Deceleration begins at the first waypoint from which the
// remaining waypoint-to-waypoint length is within stoppingDst
// An empty waypoint list yields a single-point path at start
func NewPath(waypoints []vmath.Vec2F, start vmath.Vec2F, turnDst, stoppingDst float64) *Path {
	if len(waypoints) == 0 {
		waypoints = []vmath.Vec2F{start}
	}
	p := &Path{
		LookPoints:      append([]vmath.Vec2F(nil), waypoints...),
		TurnBoundaries:  make([]vmath.Line, len(waypoints)),
		FinishLineIndex: len(waypoints) - 1,
	}

	prev := start
	lastDir := vmath.V2F(1, 0)
	for i, current := range p.LookPoints {
		dir := vmath.V2FNormalize(vmath.V2FSub(current, prev))
		if dir == (vmath.Vec2F{}) {
			// Coincident points keep the last heading so the boundary stays well formed
			dir = lastDir
		}
		lastDir = dir

		offset := vmath.V2FScale(dir, turnDst)
		boundary := vmath.V2FSub(current, offset)
		if i == p.FinishLineIndex {
			boundary = current
		}
		reference := vmath.V2FSub(prev, offset)
		if reference == boundary {
			reference = vmath.V2FSub(boundary, dir)
		}
		p.TurnBoundaries[i] = vmath.NewLine(boundary, reference)
		prev = boundary
	}

	dst := 0.0
	for i := len(p.LookPoints) - 1; i > 0; i-- {
		dst += vmath.V2FDist(p.LookPoints[i], p.LookPoints[i-1])
		if dst > stoppingDst {
			p.SlowDownIndex = i
			break
		}
	}
	return p
}

// Len returns the number of look points
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.LookPoints)
}
