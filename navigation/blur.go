package navigation

import "math"

// PenaltyRange is the min and max penalty across the grid after smoothing
type PenaltyRange struct {
	Min, Max int
}

// Normalize maps p into [0, 1] within the range, 0 for a flat range
func (r PenaltyRange) Normalize(p int) float64 {
	if r.Max <= r.Min {
		return 0
	}
	return float64(p-r.Min) / float64(r.Max-r.Min)
}

// BlurPenalties smooths cell penalties with a separable box blur of kernel 2r+1
// Both passes keep a sliding window sum so cost is O(w·h) regardless of radius
// Samples past the edge repeat the edge cell
// Must not run concurrently with searches on the same grid
func (g *Grid) BlurPenalties(radius int) PenaltyRange {
	if radius < 0 {
		radius = 0
	}
	w, h := g.width, g.height
	kernel := 2*radius + 1

	horizontal := make([]int, w*h)
	for y := 0; y < h; y++ {
		row := y * w
		sum := 0
		for k := -radius; k <= radius; k++ {
			sum += g.cells[row+clampInt(k, 0, w-1)].Penalty
		}
		horizontal[row] = sum
		for x := 1; x < w; x++ {
			sum -= g.cells[row+clampInt(x-radius-1, 0, w-1)].Penalty
			sum += g.cells[row+clampInt(x+radius, 0, w-1)].Penalty
			horizontal[row+x] = sum
		}
	}

	area := float64(kernel * kernel)
	r := PenaltyRange{Min: math.MaxInt, Max: math.MinInt}
	for x := 0; x < w; x++ {
		sum := 0
		for k := -radius; k <= radius; k++ {
			sum += horizontal[clampInt(k, 0, h-1)*w+x]
		}
		for y := 0; y < h; y++ {
			if y > 0 {
				sum -= horizontal[clampInt(y-radius-1, 0, h-1)*w+x]
				sum += horizontal[clampInt(y+radius, 0, h-1)*w+x]
			}
			p := int(math.Round(float64(sum) / area))
			g.cells[y*w+x].Penalty = p
			r.Min = min(r.Min, p)
			r.Max = max(r.Max, p)
		}
	}
	return r
}

// PenaltyRange scans the grid without modifying it
func (g *Grid) PenaltyRange() PenaltyRange {
	r := PenaltyRange{Min: math.MaxInt, Max: math.MinInt}
	for i := range g.cells {
		r.Min = min(r.Min, g.cells[i].Penalty)
		r.Max = max(r.Max, g.cells[i].Penalty)
	}
	return r
}
