package render

import (
	"github.com/gdamore/tcell/v2"
)

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // Registration order for stable sort
}

// GridView composites layers into a buffer and flushes them to a tcell screen
// It only reads the frame it is given
type GridView struct {
	screen   tcell.Screen
	buffer   *RenderBuffer
	layers   []layerEntry
	regCount int

	costs   *CostLayer
	lastCtx Context
}

// NewGridView creates a view with the standard layer stack registered
func NewGridView(screen tcell.Screen) *GridView {
	w, h := screen.Size()
	v := &GridView{
		screen: screen,
		buffer: NewRenderBuffer(w, h),
		layers: make([]layerEntry, 0, 8),
		costs:  &CostLayer{},
	}
	v.Register(SurfaceLayer{}, PrioritySurface)
	v.Register(TraceLayer{}, PriorityTrace)
	v.Register(v.costs, PriorityCost)
	v.Register(PathLayer{}, PriorityPath)
	v.Register(AgentLayer{}, PriorityAgent)
	v.Register(StatusLayer{}, PriorityUI)
	return v
}

// Register adds a layer at the specified priority, keeping sorted order via insertion
func (v *GridView) Register(l Layer, priority Priority) {
	entry := layerEntry{layer: l, priority: priority, index: v.regCount}
	v.regCount++

	pos := len(v.layers)
	for i, e := range v.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}
	v.layers = append(v.layers, layerEntry{})
	copy(v.layers[pos+1:], v.layers[pos:])
	v.layers[pos] = entry
}

// ToggleCosts flips the cost-to-target overlay and returns the new state
func (v *GridView) ToggleCosts() bool {
	v.costs.Visible = !v.costs.Visible
	return v.costs.Visible
}

// Draw renders f: clear, render all visible layers, flush, show
func (v *GridView) Draw(f Frame) {
	w, h := v.screen.Size()
	if bw, bh := v.buffer.Bounds(); bw != w || bh != h {
		v.buffer.Resize(w, h)
	} else {
		v.buffer.Clear()
	}

	ctx := NewContext(f, w, h)
	if f.Grid != nil {
		for _, e := range v.layers {
			if vt, ok := e.layer.(VisibilityToggle); ok && !vt.IsVisible() {
				continue
			}
			e.layer.Render(ctx, v.buffer)
		}
	}
	v.lastCtx = ctx

	v.buffer.Flush(v.screen)
	v.screen.Show()
}

// ScreenToCell maps a screen position to a grid cell using the last drawn frame
func (v *GridView) ScreenToCell(sx, sy int) (x, y int, ok bool) {
	p, ok := v.lastCtx.ScreenToCell(sx, sy)
	return p.X, p.Y, ok
}
