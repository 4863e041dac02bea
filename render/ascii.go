package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/navgrid/navigation"
)

// Glyphs used by the ASCII map
const (
	GlyphObstacle = '#'
	GlyphGround   = '.'
	GlyphRough    = ':' // Penalty in the upper half of the range
	GlyphPath     = 'o'
	GlyphWaypoint = '*'
	GlyphStart    = 'S'
	GlyphEnd      = 'E'
)

// Map styles; lipgloss drops color on terminals without support
var (
	styleObstacle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	styleGround   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b4261"))
	styleRough    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8f5224"))
	stylePath     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	styleWaypoint = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	styleEndpoint = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	styleFrame    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	styleSummary  = lipgloss.NewStyle().Bold(true)
)

// ASCIIMap returns the plain character map of g with res overlaid, top row first
func ASCIIMap(g *navigation.Grid, res navigation.PathResult) []string {
	w, h := g.Width(), g.Height()
	rows := make([][]rune, h)
	pr := g.PenaltyRange()
	for y := 0; y < h; y++ {
		row := make([]rune, w)
		for x := 0; x < w; x++ {
			c := g.Cell(x, y)
			switch {
			case !c.Walkable:
				row[x] = GlyphObstacle
			case pr.Normalize(c.Penalty) > 0.5:
				row[x] = GlyphRough
			default:
				row[x] = GlyphGround
			}
		}
		rows[h-1-y] = row
	}

	if res.Success {
		for _, p := range res.Cells {
			rows[h-1-p.Y][p.X] = GlyphPath
		}
		for _, wp := range res.Waypoints {
			c := g.CellFromWorld(wp)
			rows[h-1-c.Y][c.X] = GlyphWaypoint
		}
		first, last := res.Cells[0], res.Cells[len(res.Cells)-1]
		rows[h-1-first.Y][first.X] = GlyphStart
		rows[h-1-last.Y][last.X] = GlyphEnd
	}

	out := make([]string, h)
	for i, r := range rows {
		out[i] = string(r)
	}
	return out
}

// StyledMap renders the ASCII map with colors, a frame and a summary line
func StyledMap(g *navigation.Grid, res navigation.PathResult) string {
	var sb strings.Builder
	for i, line := range ASCIIMap(g, res) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range line {
			sb.WriteString(styleFor(r).Render(string(r)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styleFrame.Render(sb.String()),
		styleSummary.Render(Summary(res)),
	)
}

// Summary is a one-line description of a search result
func Summary(res navigation.PathResult) string {
	if !res.Success {
		return fmt.Sprintf("no path: %v (expanded %d in %v)", res.Err, res.Expanded, res.Elapsed)
	}
	return fmt.Sprintf("cost %d, %d cells, %d waypoints (expanded %d in %v)",
		res.Cost, len(res.Cells), len(res.Waypoints), res.Expanded, res.Elapsed)
}

func styleFor(r rune) lipgloss.Style {
	switch r {
	case GlyphObstacle:
		return styleObstacle
	case GlyphRough:
		return styleRough
	case GlyphPath:
		return stylePath
	case GlyphWaypoint:
		return styleWaypoint
	case GlyphStart, GlyphEnd:
		return styleEndpoint
	default:
		return styleGround
	}
}
