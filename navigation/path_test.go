package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/navgrid/vmath"
)

func TestSimplifyPath(t *testing.T) {
	g := openGrid(t, 6, 6)

	tests := []struct {
		name  string
		cells []Point
		want  []Point
	}{
		{"empty", nil, nil},
		{"single", []Point{{2, 2}}, []Point{{2, 2}}},
		{"straight", []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, []Point{{3, 0}}},
		{"diagonal", []Point{{0, 0}, {1, 1}, {2, 2}}, []Point{{2, 2}}},
		{"l shape", []Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}, []Point{{2, 0}, {2, 2}}},
		{"staircase", []Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}}, []Point{{1, 0}, {1, 1}, {2, 1}, {2, 2}}},
		{"two cells", []Point{{0, 0}, {0, 1}}, []Point{{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want []vmath.Vec2F
			for _, p := range tt.want {
				want = append(want, g.WorldFromCell(p.X, p.Y))
			}
			assert.Equal(t, want, SimplifyPath(g, tt.cells))
		})
	}
}

func TestNewPathStraight(t *testing.T) {
	p := NewPath([]vmath.Vec2F{vmath.V2F(10, 0)}, vmath.V2F(0, 0), 1, 5)

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 0, p.FinishLineIndex)
	assert.Equal(t, 0, p.SlowDownIndex)

	finish := p.TurnBoundaries[0]
	assert.Equal(t, vmath.V2F(10, 0), finish.Anchor())
	assert.False(t, finish.HasCrossedLine(vmath.V2F(9.9, 0)))
	assert.False(t, finish.HasCrossedLine(vmath.V2F(0, 0)))
	assert.True(t, finish.HasCrossedLine(vmath.V2F(10.5, 3)))
}

func TestNewPathTurnBoundaries(t *testing.T) {
	p := NewPath([]vmath.Vec2F{vmath.V2F(10, 0), vmath.V2F(10, 10)}, vmath.V2F(0, 0), 2, 5)

	require.Len(t, p.TurnBoundaries, 2)
	assert.Equal(t, 1, p.FinishLineIndex)

	// First boundary sits turnDst before the corner
	turn := p.TurnBoundaries[0]
	assert.Equal(t, vmath.V2F(8, 0), turn.Anchor())
	assert.False(t, turn.HasCrossedLine(vmath.V2F(7, 0)))
	assert.True(t, turn.HasCrossedLine(vmath.V2F(8.5, 0)))

	// Finish line passes through the goal
	finish := p.TurnBoundaries[1]
	assert.Equal(t, vmath.V2F(10, 10), finish.Anchor())
	assert.False(t, finish.HasCrossedLine(vmath.V2F(10, 5)))
	assert.True(t, finish.HasCrossedLine(vmath.V2F(10, 11)))
	assert.InDelta(t, 0, finish.DistanceFromPoint(vmath.V2F(10, 10)), 1e-9)
}

func TestNewPathSlowDownIndex(t *testing.T) {
	waypoints := []vmath.Vec2F{vmath.V2F(10, 0), vmath.V2F(20, 0), vmath.V2F(30, 0)}

	tests := []struct {
		stop float64
		want int
	}{
		{5, 2},
		{15, 1},
		{100, 0},
	}
	for _, tt := range tests {
		p := NewPath(waypoints, vmath.V2F(0, 0), 1, tt.stop)
		assert.Equal(t, tt.want, p.SlowDownIndex, "stopping distance %v", tt.stop)
		assert.Equal(t, 2, p.FinishLineIndex)
	}
}

func TestNewPathDegenerate(t *testing.T) {
	start := vmath.V2F(3, 4)

	p := NewPath(nil, start, 5, 10)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, start, p.LookPoints[0])
	assert.Equal(t, 0, p.FinishLineIndex)

	// Waypoint on top of start still yields a usable finish line
	p = NewPath([]vmath.Vec2F{start}, start, 0, 10)
	require.Equal(t, 1, p.Len())
	assert.False(t, p.TurnBoundaries[0].HasCrossedLine(vmath.V2F(2, 4)))
	assert.True(t, p.TurnBoundaries[0].HasCrossedLine(vmath.V2F(4, 4)))
}

func TestNewPathCopiesWaypoints(t *testing.T) {
	waypoints := []vmath.Vec2F{vmath.V2F(1, 1)}
	p := NewPath(waypoints, vmath.V2F(0, 0), 1, 1)
	waypoints[0] = vmath.V2F(9, 9)
	assert.Equal(t, vmath.V2F(1, 1), p.LookPoints[0])
}

func TestPathLenNil(t *testing.T) {
	var p *Path
	assert.Equal(t, 0, p.Len())
}
