package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/vmath"
)

// Cost overlay arrows in navigation.DirVectors order
var costArrows = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Agent glyphs by heading octant, counter-clockwise from +X
var headingArrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// SurfaceLayer paints obstacles and penalty-shaded ground
type SurfaceLayer struct{}

func (SurfaceLayer) Render(ctx Context, buf *RenderBuffer) {
	g := ctx.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			sx, sy, ok := ctx.CellToScreen(x, y)
			if !ok {
				continue
			}
			c := g.Cell(x, y)
			bg := RgbObstacle
			if c.Walkable {
				bg = PenaltyColor(ctx.Range.Normalize(c.Penalty))
			}
			for i := 0; i < CellWidth; i++ {
				buf.SetWithBg(sx+i, sy, ' ', bg, bg)
			}
		}
	}
}

// TraceLayer tints cells by their search replay state
type TraceLayer struct{}

func (TraceLayer) Render(ctx Context, buf *RenderBuffer) {
	if ctx.Board == nil {
		return
	}
	g := ctx.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			m := ctx.Board.Mark(x, y)
			if m == MarkNone {
				continue
			}
			sx, sy, ok := ctx.CellToScreen(x, y)
			if !ok {
				continue
			}
			for i := 0; i < CellWidth; i++ {
				switch m {
				case MarkOpen:
					buf.BlendBg(sx+i, sy, RgbOpen, 0.6)
				case MarkExplored:
					buf.BlendBg(sx+i, sy, RgbExplored, 0.6)
				case MarkPath:
					buf.BlendBg(sx+i, sy, RgbPath, 0.5)
				case MarkStart:
					buf.SetBgOnly(sx+i, sy, RgbStart)
				case MarkEnd:
					buf.SetBgOnly(sx+i, sy, RgbEnd)
				}
			}
		}
	}
}

// CostLayer draws cost-to-target arrows, hidden until toggled
type CostLayer struct {
	Visible bool
}

func (l *CostLayer) IsVisible() bool {
	return l.Visible
}

func (l *CostLayer) Render(ctx Context, buf *RenderBuffer) {
	f := ctx.Costs
	if f == nil || !f.Valid {
		return
	}

	maxDist := 1
	for _, d := range f.Distances {
		if d != navigation.Unreachable && d > maxDist {
			maxDist = d
		}
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			sx, sy, ok := ctx.CellToScreen(x, y)
			if !ok {
				continue
			}
			dir := f.Direction(x, y)
			switch {
			case dir == navigation.DirTarget:
				buf.SetFgOnly(sx, sy, '●', RgbLookPoint, tcell.AttrNone)
			case dir < 0:
				buf.SetFgOnly(sx, sy, '·', RgbCostNone, tcell.AttrNone)
			default:
				t := float64(f.Cost(x, y)) / float64(maxDist)
				buf.SetFgOnly(sx, sy, costArrows[dir], CostColor(t), tcell.AttrNone)
			}
		}
	}
}

// PathLayer marks turn boundaries and look points of the followed path
type PathLayer struct{}

func (PathLayer) Render(ctx Context, buf *RenderBuffer) {
	p := ctx.Path
	if p.Len() == 0 {
		return
	}

	// Boundary segments span one cell either side of the anchor
	span := ctx.Grid.CellDiameter()
	for _, b := range p.TurnBoundaries {
		dir := b.Direction()
		for _, s := range []float64{-span, 0, span} {
			pt := vmath.V2FAdd(b.Anchor(), vmath.V2FScale(dir, s))
			if sx, sy, ok := ctx.WorldToScreen(pt); ok {
				buf.SetFgOnly(sx+1, sy, BoundaryGlyph(b.Gradient()), RgbBoundary, tcell.AttrNone)
			}
		}
	}

	for i, lp := range p.LookPoints {
		sx, sy, ok := ctx.WorldToScreen(lp)
		if !ok {
			continue
		}
		r := '◆'
		if i == p.FinishLineIndex {
			r = '◎'
		}
		buf.SetFgOnly(sx, sy, r, RgbLookPoint, tcell.AttrBold)
	}
}

// BoundaryGlyph picks a box-drawing rune closest to a line of the given world slope
// Screen rows grow downward, so a rising world line renders as '╱'
func BoundaryGlyph(gradient float64) rune {
	switch g := math.Abs(gradient); {
	case g < 0.5:
		return '─'
	case g > 2:
		return '│'
	case gradient > 0:
		return '╱'
	default:
		return '╲'
	}
}

// AgentLayer draws the target and the agent heading glyph
type AgentLayer struct{}

func (AgentLayer) Render(ctx Context, buf *RenderBuffer) {
	if sx, sy, ok := ctx.WorldToScreen(ctx.Target); ok {
		buf.SetFgOnly(sx, sy, '✚', RgbTarget, tcell.AttrBold)
	}
	if sx, sy, ok := ctx.WorldToScreen(ctx.Agent.Position); ok {
		buf.SetFgOnly(sx, sy, HeadingGlyph(ctx.Agent.Heading), RgbAgent, tcell.AttrBold)
	}
}

// HeadingGlyph returns the arrow nearest to heading (radians, counter-clockwise from +X)
func HeadingGlyph(heading float64) rune {
	octant := int(math.Round(vmath.WrapAngle(heading)/(math.Pi/4))) & 7
	return headingArrows[octant]
}

// StatusLayer fills the bottom line
type StatusLayer struct{}

func (StatusLayer) Render(ctx Context, buf *RenderBuffer) {
	y := ctx.ScreenHeight - 1
	if y < 0 {
		return
	}
	bg := RgbStatusBg
	if ctx.Status.Searched && !ctx.Status.Success {
		bg = RgbStatusFail
	}
	for x := 0; x < ctx.ScreenWidth; x++ {
		buf.SetWithBg(x, y, ' ', RgbStatusText, bg)
	}
	buf.SetString(0, y, ctx.Status.Line(), RgbStatusText, bg)
}

// Line formats the status for display
func (s Status) Line() string {
	line := fmt.Sprintf(" %s", s.State)
	if s.Paused {
		line = " paused |" + line
	}
	if s.Searched {
		if s.Success {
			line += fmt.Sprintf(" | cost %d | expanded %d | waypoints %d", s.Cost, s.Expanded, s.Waypoints)
		} else {
			line += fmt.Sprintf(" | no path | expanded %d", s.Expanded)
		}
	}
	line += fmt.Sprintf(" | replans %d", s.Replans)
	if s.Message != "" {
		line += " | " + s.Message
	}
	return line
}
