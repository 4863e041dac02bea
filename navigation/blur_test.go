package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlurUniformGridUnchanged(t *testing.T) {
	for _, radius := range []int{0, 1, 3, 7} {
		g := gridFromRows(t,
			"777777",
			"777777",
			"777777",
			"777777",
		)
		r := g.BlurPenalties(radius)
		assert.Equal(t, PenaltyRange{Min: 7, Max: 7}, r, "radius %d", radius)
		for i := 0; i < g.Size(); i++ {
			assert.Equal(t, 7, g.CellAt(i).Penalty, "radius %d cell %d", radius, i)
		}
	}
}

func TestBlurSpikeSpreadsToKernelWindow(t *testing.T) {
	g := openGrid(t, 9, 9)
	g.Cell(4, 4).Penalty = 81

	r := g.BlurPenalties(1)
	assert.Equal(t, PenaltyRange{Min: 0, Max: 9}, r)

	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			want := 0
			if absInt(x-4) <= 1 && absInt(y-4) <= 1 {
				want = 9
			}
			assert.Equal(t, want, g.Cell(x, y).Penalty, "cell %d,%d", x, y)
		}
	}
}

func TestBlurClampsAtEdges(t *testing.T) {
	g := gridFromRows(t, "900")

	g.BlurPenalties(1)

	// Edge samples repeat the edge cell: row sums 18, 9, 0 then tripled vertically
	assert.Equal(t, 6, g.Cell(0, 0).Penalty)
	assert.Equal(t, 3, g.Cell(1, 0).Penalty)
	assert.Equal(t, 0, g.Cell(2, 0).Penalty)
}

func TestBlurNegativeRadiusIsNoop(t *testing.T) {
	g := gridFromRows(t, "1234", "5678")
	r := g.BlurPenalties(-2)
	assert.Equal(t, PenaltyRange{Min: 1, Max: 8}, r)
	assert.Equal(t, 4, g.Cell(3, 1).Penalty)
	assert.Equal(t, r, g.PenaltyRange())
}

func TestPenaltyRangeNormalize(t *testing.T) {
	r := PenaltyRange{Min: 10, Max: 20}
	assert.InDelta(t, 0.0, r.Normalize(10), 1e-12)
	assert.InDelta(t, 0.5, r.Normalize(15), 1e-12)
	assert.InDelta(t, 1.0, r.Normalize(20), 1e-12)
	assert.InDelta(t, 0.0, PenaltyRange{Min: 5, Max: 5}.Normalize(5), 1e-12)
}
