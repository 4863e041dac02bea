package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDimensions(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{21, 15, 21, 15},
		{20, 14, 19, 13},
		{1, 2, 3, 3},
	}
	for _, tt := range tests {
		m := Generate(Config{Width: tt.w, Height: tt.h, Seed: 1})
		assert.Equal(t, tt.cols, m.Width())
		assert.Equal(t, tt.rows, m.Height())
	}
}

func TestGenerateSolvable(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		m := Generate(Config{Width: 31, Height: 21, Braiding: 0.5, Seed: seed})

		assert.False(t, m.IsWall(m.Start.X, m.Start.Y))
		assert.False(t, m.IsWall(m.End.X, m.End.Y))
		require.NotEmpty(t, m.Solution, "seed %d", seed)
		assert.Equal(t, m.Start, m.Solution[0])
		assert.Equal(t, m.End, m.Solution[len(m.Solution)-1])

		for i := 1; i < len(m.Solution); i++ {
			a, b := m.Solution[i-1], m.Solution[i]
			assert.Equal(t, 1, abs(a.X-b.X)+abs(a.Y-b.Y))
			assert.False(t, m.IsWall(b.X, b.Y))
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(Config{Width: 25, Height: 25, Braiding: 0.4, Seed: 42})
	b := Generate(Config{Width: 25, Height: 25, Braiding: 0.4, Seed: 42})
	assert.Equal(t, a.Walls, b.Walls)
	assert.Equal(t, a.Solution, b.Solution)
}

func TestBraidingRemovesDeadEnds(t *testing.T) {
	perfect := Generate(Config{Width: 41, Height: 41, Seed: 9})
	braided := Generate(Config{Width: 41, Height: 41, Braiding: 1, Seed: 9})
	assert.Less(t, deadEnds(braided), deadEnds(perfect))
}

func TestBraidingKeepsTopology(t *testing.T) {
	m := Generate(Config{Width: 41, Height: 41, Braiding: 1, Seed: 3})
	for y := 0; y < m.Height()-1; y++ {
		for x := 0; x < m.Width()-1; x++ {
			plaza := !m.Walls[y][x] && !m.Walls[y][x+1] && !m.Walls[y+1][x] && !m.Walls[y+1][x+1]
			assert.False(t, plaza, "open 2x2 at %d,%d", x, y)
		}
	}
}

func TestOpenBorder(t *testing.T) {
	m := Generate(Config{Width: 15, Height: 11, OpenBorder: true, Seed: 5})
	for x := 0; x < m.Width(); x++ {
		assert.False(t, m.Walls[0][x])
		assert.False(t, m.Walls[m.Height()-1][x])
	}
	assert.Equal(t, m.Width()-1, m.End.X)
	assert.NotEmpty(t, m.Solution)
}

func TestExplicitEndpointsClamp(t *testing.T) {
	m := Generate(Config{Width: 11, Height: 11, Seed: 2, End: &Point{X: 50, Y: -4}})
	assert.Equal(t, Point{X: 10, Y: 0}, m.End)
	assert.False(t, m.IsWall(10, 0))
}

func TestIsWallOutOfBounds(t *testing.T) {
	m := Generate(Config{Width: 5, Height: 5, Seed: 1})
	assert.True(t, m.IsWall(-1, 0))
	assert.True(t, m.IsWall(0, 5))
}

func deadEnds(m *Maze) int {
	n := 0
	for y := 1; y < m.Height()-1; y++ {
		for x := 1; x < m.Width()-1; x++ {
			if m.Walls[y][x] {
				continue
			}
			exits := 0
			for _, d := range orthoSteps {
				if !m.Walls[y+d.Y][x+d.X] {
					exits++
				}
			}
			if exits == 1 {
				n++
			}
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
