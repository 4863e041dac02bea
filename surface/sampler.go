package surface

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/vmath"
)

// Collision categories for static scene shapes
const (
	categoryObstacle uint = 1 << iota
	categoryTerrain
)

// Shapes closer than this to touching a cell edge do not block it
const contactSlop = 1e-6

var (
	obstacleQuery = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryObstacle)
	terrainQuery  = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryTerrain)
)

// Sampler classifies cells against a scene loaded into a static physics space
// A cell is unwalkable when any obstacle lies within the cell radius of its center
type Sampler struct {
	space     *cp.Space
	penalties map[*cp.Shape]int
}

// NewSampler builds the static space for s
func NewSampler(s *Scene) *Sampler {
	space := cp.NewSpace()
	sm := &Sampler{
		space:     space,
		penalties: make(map[*cp.Shape]int, len(s.Terrain)),
	}

	for _, o := range s.Obstacles {
		var shape *cp.Shape
		switch {
		case o.Box != nil:
			shape = cp.NewBox2(space.StaticBody, rectBB(*o.Box), 0)
		case o.Circle != nil:
			shape = cp.NewCircle(space.StaticBody, o.Circle.R, cp.Vector{X: o.Circle.X, Y: o.Circle.Y})
		default:
			continue
		}
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryObstacle, cp.ALL_CATEGORIES))
		space.AddShape(shape)
	}

	for _, t := range s.Terrain {
		shape := cp.NewBox2(space.StaticBody, rectBB(t.Box), 0)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryTerrain, cp.ALL_CATEGORIES))
		space.AddShape(shape)
		sm.penalties[shape] = t.Penalty
	}

	return sm
}

// Sample implements navigation.Sampler
// Terrain penalty is reported for blocked cells too, so blur near walls on terrain keeps it
// Overlapping terrain resolves to the region the point lies deepest inside
func (sm *Sampler) Sample(world vmath.Vec2F, radius float64) navigation.CellSample {
	p := cp.Vector{X: world.X, Y: world.Y}

	var sample navigation.CellSample
	if hit := sm.space.PointQueryNearest(p, 0, terrainQuery); hit != nil && hit.Shape != nil {
		sample.Penalty = sm.penalties[hit.Shape]
	}

	hit := sm.space.PointQueryNearest(p, max(radius-contactSlop, 0), obstacleQuery)
	sample.Walkable = hit == nil || hit.Shape == nil
	return sample
}

func rectBB(r Rect) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}
