package navigation

import (
	"fmt"
	"math"

	"github.com/lixenwraith/navgrid/vmath"
)

// Step directions in grid space, +Y is world up
// Order: N, NE, E, SE, S, SW, W, NW
var DirVectors = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// Weighted step costs: cardinal = 10, diagonal = 14 (≈10√2)
const (
	CostCardinal = 10
	CostDiagonal = 14
)

// Per-direction costs matching DirVectors index order
var dirCosts = [8]int{
	CostCardinal, CostDiagonal, CostCardinal, CostDiagonal,
	CostCardinal, CostDiagonal, CostCardinal, CostDiagonal,
}

// Point is an integer grid coordinate
type Point struct {
	X, Y int
}

// Cell is one discretized unit of the traversal surface
// Cells are read-only once the grid is built; search state lives in per-search scratch
type Cell struct {
	X, Y     int
	Walkable bool
	Penalty  int         // Movement penalty added when entering the cell, >= 0
	World    vmath.Vec2F // Cell center in world space
}

// Point returns the grid coordinate of the cell
func (c *Cell) Point() Point {
	return Point{c.X, c.Y}
}

// CellSample is what a Sampler reports for one cell center
type CellSample struct {
	Walkable bool
	Penalty  int
}

// Sampler classifies the surface under a cell
// radius is the cell half-size, used for overlap checks
type Sampler interface {
	Sample(world vmath.Vec2F, radius float64) CellSample
}

// SamplerFunc adapts a function to Sampler
type SamplerFunc func(world vmath.Vec2F, radius float64) CellSample

func (f SamplerFunc) Sample(world vmath.Vec2F, radius float64) CellSample {
	return f(world, radius)
}

// GridSpec describes the world rectangle covered by a grid
type GridSpec struct {
	Origin     vmath.Vec2F // World-space center of the covered rectangle
	WorldSize  vmath.Vec2F
	CellRadius float64

	// Added to the sampled penalty of unwalkable cells so blurred penalties rise near walls
	ObstacleProximityPenalty int
}

// Grid is a fixed-size arena of cells covering a world rectangle
type Grid struct {
	width, height int
	cellRadius    float64
	cellDiameter  float64
	origin        vmath.Vec2F
	worldSize     vmath.Vec2F
	bottomLeft    vmath.Vec2F
	cells         []Cell
}

// NewGrid samples every cell center and builds the grid
// A nil sampler yields an open grid with zero penalties
func NewGrid(spec GridSpec, sampler Sampler) (*Grid, error) {
	if !(spec.CellRadius > 0) || math.IsInf(spec.CellRadius, 0) {
		return nil, fmt.Errorf("%w: cell radius %v must be positive", ErrConfiguration, spec.CellRadius)
	}
	if !(spec.WorldSize.X > 0) || !(spec.WorldSize.Y > 0) {
		return nil, fmt.Errorf("%w: world size %v must be positive", ErrConfiguration, spec.WorldSize)
	}
	if spec.ObstacleProximityPenalty < 0 {
		return nil, fmt.Errorf("%w: obstacle proximity penalty %d is negative", ErrConfiguration, spec.ObstacleProximityPenalty)
	}

	diameter := spec.CellRadius * 2
	width := int(math.Round(spec.WorldSize.X / diameter))
	height := int(math.Round(spec.WorldSize.Y / diameter))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %.3gx%.3g world with cell diameter %.3g", ErrEmptyGrid, spec.WorldSize.X, spec.WorldSize.Y, diameter)
	}

	g := &Grid{
		width:        width,
		height:       height,
		cellRadius:   spec.CellRadius,
		cellDiameter: diameter,
		origin:       spec.Origin,
		worldSize:    spec.WorldSize,
		bottomLeft:   vmath.V2FSub(spec.Origin, vmath.V2FScale(spec.WorldSize, 0.5)),
		cells:        make([]Cell, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &g.cells[y*width+x]
			c.X, c.Y = x, y
			c.World = g.WorldFromCell(x, y)
			c.Walkable = true
			if sampler != nil {
				s := sampler.Sample(c.World, spec.CellRadius)
				c.Walkable = s.Walkable
				c.Penalty = max(s.Penalty, 0)
			}
			if !c.Walkable {
				c.Penalty += spec.ObstacleProximityPenalty
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

// Size returns total cell count
func (g *Grid) Size() int {
	return len(g.cells)
}

func (g *Grid) CellRadius() float64 {
	return g.cellRadius
}

func (g *Grid) CellDiameter() float64 {
	return g.cellDiameter
}

func (g *Grid) Origin() vmath.Vec2F {
	return g.origin
}

func (g *Grid) WorldSize() vmath.Vec2F {
	return g.worldSize
}

func (g *Grid) BottomLeft() vmath.Vec2F {
	return g.bottomLeft
}

// Index returns flat arena index, -1 when out of bounds
func (g *Grid) Index(x, y int) int {
	if !g.InBounds(x, y) {
		return -1
	}
	return y*g.width + x
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Cell returns the cell at (x, y), nil when out of bounds
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// CellAt returns the cell at flat index i
func (g *Grid) CellAt(i int) *Cell {
	return &g.cells[i]
}

// Walkable reports false for out-of-bounds coordinates
func (g *Grid) Walkable(x, y int) bool {
	c := g.Cell(x, y)
	return c != nil && c.Walkable
}

// WorldFromCell returns the world-space center of cell (x, y)
func (g *Grid) WorldFromCell(x, y int) vmath.Vec2F {
	return vmath.Vec2F{
		X: g.bottomLeft.X + float64(x)*g.cellDiameter + g.cellRadius,
		Y: g.bottomLeft.Y + float64(y)*g.cellDiameter + g.cellRadius,
	}
}

// CellFromWorld maps a world point to the containing cell
// Points outside the covered rectangle clamp to the nearest edge cell
func (g *Grid) CellFromWorld(p vmath.Vec2F) *Cell {
	percentX := vmath.Clamp01((p.X - g.bottomLeft.X) / g.worldSize.X)
	percentY := vmath.Clamp01((p.Y - g.bottomLeft.Y) / g.worldSize.Y)
	x := clampInt(int(math.Floor(float64(g.width)*percentX)), 0, g.width-1)
	y := clampInt(int(math.Floor(float64(g.height)*percentY)), 0, g.height-1)
	return &g.cells[y*g.width+x]
}

// Neighbors appends the in-bounds neighbors of c to dst and returns it
// With diagonal false only the four cardinal neighbors are considered
func (g *Grid) Neighbors(c *Cell, diagonal bool, dst []*Cell) []*Cell {
	for dir, v := range DirVectors {
		if !diagonal && dir%2 == 1 {
			continue
		}
		if n := g.Cell(c.X+v[0], c.Y+v[1]); n != nil {
			dst = append(dst, n)
		}
	}
	return dst
}

// Distance is the octile step-cost estimate between two cells
func Distance(a, b *Cell) int {
	return distanceXY(a.X, a.Y, b.X, b.Y)
}

func distanceXY(ax, ay, bx, by int) int {
	dx := absInt(ax - bx)
	dy := absInt(ay - by)
	if dx > dy {
		return CostDiagonal*dy + CostCardinal*(dx-dy)
	}
	return CostDiagonal*dx + CostCardinal*(dy-dx)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
