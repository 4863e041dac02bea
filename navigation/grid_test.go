package navigation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/navgrid/vmath"
)

// gridFromRows builds a unit-cell grid from an ASCII map, first row on top
// '#' wall, '.' open, '0'-'9' open with that penalty
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	sampler := SamplerFunc(func(p vmath.Vec2F, _ float64) CellSample {
		x := int(math.Floor(p.X))
		y := int(math.Floor(p.Y))
		ch := rows[h-1-y][x]
		switch {
		case ch == '#':
			return CellSample{Walkable: false}
		case ch >= '0' && ch <= '9':
			return CellSample{Walkable: true, Penalty: int(ch - '0')}
		default:
			return CellSample{Walkable: true}
		}
	})
	g, err := NewGrid(GridSpec{
		Origin:     vmath.V2F(float64(w)/2, float64(h)/2),
		WorldSize:  vmath.V2F(float64(w), float64(h)),
		CellRadius: 0.5,
	}, sampler)
	require.NoError(t, err)
	return g
}

func openGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := NewGrid(GridSpec{
		Origin:     vmath.V2F(float64(w)/2, float64(h)/2),
		WorldSize:  vmath.V2F(float64(w), float64(h)),
		CellRadius: 0.5,
	}, nil)
	require.NoError(t, err)
	return g
}

func TestNewGridDimensions(t *testing.T) {
	g, err := NewGrid(GridSpec{WorldSize: vmath.V2F(10, 6), CellRadius: 0.5}, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, g.Width())
	assert.Equal(t, 6, g.Height())
	assert.Equal(t, 60, g.Size())
	assert.Equal(t, vmath.V2F(-4.5, -2.5), g.Cell(0, 0).World)
	assert.Equal(t, vmath.V2F(4.5, 2.5), g.Cell(9, 5).World)
	assert.Nil(t, g.Cell(10, 0))
	assert.Equal(t, -1, g.Index(-1, 0))
	assert.Equal(t, 23, g.Index(3, 2))
}

func TestNewGridRejectsInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec GridSpec
		want error
	}{
		{"zero radius", GridSpec{WorldSize: vmath.V2F(10, 10)}, ErrConfiguration},
		{"negative radius", GridSpec{WorldSize: vmath.V2F(10, 10), CellRadius: -1}, ErrConfiguration},
		{"nan radius", GridSpec{WorldSize: vmath.V2F(10, 10), CellRadius: math.NaN()}, ErrConfiguration},
		{"zero world", GridSpec{WorldSize: vmath.V2F(0, 10), CellRadius: 1}, ErrConfiguration},
		{"negative proximity", GridSpec{WorldSize: vmath.V2F(10, 10), CellRadius: 1, ObstacleProximityPenalty: -1}, ErrConfiguration},
		{"radius larger than world", GridSpec{WorldSize: vmath.V2F(1, 1), CellRadius: 10}, ErrEmptyGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.spec, nil)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewGridSamplerAndProximityPenalty(t *testing.T) {
	sampler := SamplerFunc(func(p vmath.Vec2F, radius float64) CellSample {
		assert.Equal(t, 0.5, radius)
		if p.X > 2 && p.X < 4 {
			return CellSample{Walkable: false}
		}
		return CellSample{Walkable: true, Penalty: 3}
	})
	g, err := NewGrid(GridSpec{
		Origin:                   vmath.V2F(3, 3),
		WorldSize:                vmath.V2F(6, 6),
		CellRadius:               0.5,
		ObstacleProximityPenalty: 10,
	}, sampler)
	require.NoError(t, err)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.Cell(x, y)
			if x == 2 || x == 3 {
				assert.False(t, c.Walkable, "cell %d,%d", x, y)
				assert.Equal(t, 10, c.Penalty)
			} else {
				assert.True(t, c.Walkable, "cell %d,%d", x, y)
				assert.Equal(t, 3, c.Penalty)
			}
		}
	}
}

func TestCellFromWorldClamps(t *testing.T) {
	g, err := NewGrid(GridSpec{WorldSize: vmath.V2F(10, 10), CellRadius: 0.5}, nil)
	require.NoError(t, err)

	tests := []struct {
		p    vmath.Vec2F
		want Point
	}{
		{vmath.V2F(-4.5, -4.5), Point{0, 0}},
		{vmath.V2F(0, 0), Point{5, 5}},
		{vmath.V2F(4.99, -4.99), Point{9, 0}},
		{vmath.V2F(100, 100), Point{9, 9}},
		{vmath.V2F(-100, 0), Point{0, 5}},
		{vmath.V2F(5, 5), Point{9, 9}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.CellFromWorld(tt.p).Point(), "point %v", tt.p)
	}

	// Every cell center maps back to its own cell
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			assert.Equal(t, Point{x, y}, g.CellFromWorld(g.WorldFromCell(x, y)).Point())
		}
	}
}

func TestNeighborsClippedAtEdges(t *testing.T) {
	g := openGrid(t, 4, 4)
	var buf []*Cell

	assert.Len(t, g.Neighbors(g.Cell(0, 0), true, buf[:0]), 3)
	assert.Len(t, g.Neighbors(g.Cell(0, 0), false, buf[:0]), 2)
	assert.Len(t, g.Neighbors(g.Cell(1, 0), true, buf[:0]), 5)
	assert.Len(t, g.Neighbors(g.Cell(1, 1), true, buf[:0]), 8)
	assert.Len(t, g.Neighbors(g.Cell(1, 1), false, buf[:0]), 4)
}

func TestNeighborsFollowDirOrder(t *testing.T) {
	g := openGrid(t, 3, 3)
	c := g.Cell(1, 1)

	all := g.Neighbors(c, true, nil)
	require.Len(t, all, 8)
	for i, n := range all {
		assert.Equal(t, Point{1 + DirVectors[i][0], 1 + DirVectors[i][1]}, n.Point())
	}

	cardinal := g.Neighbors(c, false, make([]*Cell, 0, 8))
	require.Len(t, cardinal, 4)
	for _, n := range cardinal {
		assert.Equal(t, 1, absInt(n.X-1)+absInt(n.Y-1))
	}
}

func TestDistance(t *testing.T) {
	g := openGrid(t, 6, 6)
	assert.Equal(t, 34, Distance(g.Cell(0, 0), g.Cell(3, 1)))
	assert.Equal(t, 34, Distance(g.Cell(3, 1), g.Cell(0, 0)))
	assert.Equal(t, 56, Distance(g.Cell(0, 0), g.Cell(4, 4)))
	assert.Equal(t, 50, Distance(g.Cell(0, 0), g.Cell(0, 5)))
	assert.Equal(t, 0, Distance(g.Cell(2, 2), g.Cell(2, 2)))
}
