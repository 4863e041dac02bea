package render

import "github.com/gdamore/tcell/v2"

// Cell is one composited screen cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs tcell.AttrMask
}

var blankCell = Cell{Fg: RgbBackground, Bg: RgbBackground}

// RenderBuffer composites layers in screen space and flushes once per frame
// Cells whose background no layer painted fall back to RgbBackground on flush
type RenderBuffer struct {
	cells   []Cell
	painted []bool
	width   int
	height  int
}

func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize keeps the backing arrays when they are large enough
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	if cap(b.cells) >= n {
		b.cells, b.painted = b.cells[:n], b.painted[:n]
	} else {
		b.cells, b.painted = make([]Cell, n), make([]bool, n)
	}
	b.width, b.height = width, height
	b.Clear()
}

// Clear blanks the buffer by doubling copies from the first cell
func (b *RenderBuffer) Clear() {
	n := len(b.cells)
	if n == 0 {
		return
	}
	b.cells[0], b.painted[0] = blankCell, false
	for done := 1; done < n; done <<= 1 {
		copy(b.cells[done:], b.cells[:done])
		copy(b.painted[done:], b.painted[:done])
	}
}

func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// index maps (x, y) to a cell offset, -1 when clipped
func (b *RenderBuffer) index(x, y int) int {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Get returns the zero Cell when clipped
func (b *RenderBuffer) Get(x, y int) Cell {
	if i := b.index(x, y); i >= 0 {
		return b.cells[i]
	}
	return Cell{}
}

// SetWithBg replaces the cell outright
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if i := b.index(x, y); i >= 0 {
		b.cells[i] = Cell{Rune: r, Fg: fg, Bg: bg}
		b.painted[i] = true
	}
}

// SetFgOnly draws a glyph over whatever background is underneath
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB, attrs tcell.AttrMask) {
	if i := b.index(x, y); i >= 0 {
		c := &b.cells[i]
		c.Rune, c.Fg, c.Attrs = r, fg, attrs
	}
}

// SetBgOnly paints the background, leaving any glyph in place
func (b *RenderBuffer) SetBgOnly(x, y int, bg RGB) {
	if i := b.index(x, y); i >= 0 {
		b.cells[i].Bg = bg
		b.painted[i] = true
	}
}

// BlendBg tints the background toward bg by alpha
func (b *RenderBuffer) BlendBg(x, y int, bg RGB, alpha float64) {
	if i := b.index(x, y); i >= 0 {
		b.cells[i].Bg = b.cells[i].Bg.Blend(bg, alpha)
		b.painted[i] = true
	}
}

// SetString writes s from (x, y) rightward and returns the rune count
func (b *RenderBuffer) SetString(x, y int, s string, fg, bg RGB) int {
	n := 0
	for _, r := range s {
		b.SetWithBg(x+n, y, r, fg, bg)
		n++
	}
	return n
}

// Flush copies the buffer to screen without calling Show
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for i, c := range b.cells {
		if !b.painted[i] {
			c.Bg = RgbBackground
		}
		if c.Rune == 0 {
			c.Rune = ' '
		}
		style := tcell.StyleDefault.
			Foreground(c.Fg.Tcell()).
			Background(c.Bg.Tcell()).
			Attributes(c.Attrs)
		screen.SetContent(i%b.width, i/b.width, c.Rune, nil, style)
	}
}
