package surface

import (
	"fmt"

	"github.com/lixenwraith/navgrid/surface/maze"
	"github.com/lixenwraith/navgrid/vmath"
)

// FromMaze converts a maze into a scene centered on the world origin
// Maze row 0 maps to the top of the world; horizontal wall runs become one box each
func FromMaze(m *maze.Maze, cellSize float64) *Scene {
	cols, rows := m.Width(), m.Height()
	size := vmath.V2F(float64(cols)*cellSize, float64(rows)*cellSize)
	s := &Scene{
		Name: fmt.Sprintf("maze %dx%d", cols, rows),
		Size: &size,
	}

	left, top := -size.X/2, size.Y/2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; {
			if !m.IsWall(x, y) {
				x++
				continue
			}
			run := x
			for run < cols && m.IsWall(run, y) {
				run++
			}
			s.Obstacles = append(s.Obstacles, Obstacle{Box: &Rect{
				X: left + float64(x)*cellSize,
				Y: top - float64(y+1)*cellSize,
				W: float64(run-x) * cellSize,
				H: cellSize,
			}})
			x = run
		}
	}

	center := func(p maze.Point) *vmath.Vec2F {
		v := vmath.V2F(left+(float64(p.X)+0.5)*cellSize, top-(float64(p.Y)+0.5)*cellSize)
		return &v
	}
	s.Start = center(m.Start)
	s.Target = center(m.End)
	return s
}
