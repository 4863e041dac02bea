package render

import (
	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/steering"
	"github.com/lixenwraith/navgrid/vmath"
)

// CellWidth is the number of screen columns per grid cell, keeping cells roughly square
const CellWidth = 2

// Status is the text shown on the bottom line
type Status struct {
	State     steering.State
	Success   bool
	Searched  bool // At least one search has completed
	Cost      int
	Expanded  int
	Waypoints int
	Replans   int
	Paused    bool
	Message   string
}

// Frame is a read-only snapshot of what to draw
type Frame struct {
	Grid   *navigation.Grid
	Range  navigation.PenaltyRange
	Board  *TraceBoard           // Optional search visualization
	Costs  *navigation.CostField // Optional cost-to-target overlay
	Path   *navigation.Path
	Agent  steering.Pose
	Target vmath.Vec2F
	Status Status
}

// Context is a frame plus the grid-to-screen mapping, passed by value
type Context struct {
	Frame

	ScreenWidth  int
	ScreenHeight int

	// Screen position of grid cell (0, height-1), the top-left cell
	OffsetX int
	OffsetY int
}

// NewContext centers the grid in the screen area above the status line
func NewContext(f Frame, screenWidth, screenHeight int) Context {
	ctx := Context{Frame: f, ScreenWidth: screenWidth, ScreenHeight: screenHeight}
	if f.Grid == nil {
		return ctx
	}
	mapW := f.Grid.Width() * CellWidth
	mapH := f.Grid.Height()
	viewH := max(screenHeight-1, 0)
	if mapW < screenWidth {
		ctx.OffsetX = (screenWidth - mapW) / 2
	}
	if mapH < viewH {
		ctx.OffsetY = (viewH - mapH) / 2
	}
	return ctx
}

// CellToScreen maps grid cell (x, y) to the left column and row of its screen cell
// Grid +Y is up, screen rows grow down
func (c Context) CellToScreen(x, y int) (sx, sy int, visible bool) {
	sx = c.OffsetX + x*CellWidth
	sy = c.OffsetY + (c.Grid.Height() - 1 - y)
	visible = sx >= 0 && sx+CellWidth <= c.ScreenWidth && sy >= 0 && sy < c.ScreenHeight-1
	return sx, sy, visible
}

// WorldToScreen maps a world point through the cell that contains it
func (c Context) WorldToScreen(p vmath.Vec2F) (sx, sy int, visible bool) {
	cell := c.Grid.CellFromWorld(p)
	return c.CellToScreen(cell.X, cell.Y)
}

// ScreenToCell inverts CellToScreen, false outside the grid
func (c Context) ScreenToCell(sx, sy int) (navigation.Point, bool) {
	if c.Grid == nil || sx < c.OffsetX || sy < c.OffsetY {
		return navigation.Point{}, false
	}
	x := (sx - c.OffsetX) / CellWidth
	y := c.Grid.Height() - 1 - (sy - c.OffsetY)
	if !c.Grid.InBounds(x, y) {
		return navigation.Point{}, false
	}
	return navigation.Point{X: x, Y: y}, true
}
