package render

import (
	"sync"

	"github.com/lixenwraith/navgrid/navigation"
)

// TraceQueue is a bounded FIFO of search events
// Searches push at full speed; the simulation drains a fixed number per tick so the
// visualization replays gradually. When full, the oldest events are dropped.
type TraceQueue struct {
	mu      sync.Mutex
	events  []navigation.TraceEvent
	head    int
	count   int
	dropped uint64
}

func NewTraceQueue(capacity int) *TraceQueue {
	return &TraceQueue{events: make([]navigation.TraceEvent, max(capacity, 1))}
}

// Trace implements navigation.Tracer
func (q *TraceQueue) Trace(ev navigation.TraceEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	capacity := len(q.events)
	if q.count == capacity {
		q.head = (q.head + 1) % capacity
		q.count--
		q.dropped++
	}
	q.events[(q.head+q.count)%capacity] = ev
	q.count++
}

// Drain hands at most n events to fn in FIFO order and returns how many it handed
// fn runs under the queue lock and must not call back into the queue
func (q *TraceQueue) Drain(n int, fn func(navigation.TraceEvent)) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n = min(n, q.count)
	capacity := len(q.events)
	for i := 0; i < n; i++ {
		fn(q.events[q.head])
		q.head = (q.head + 1) % capacity
	}
	q.count -= n
	return n
}

func (q *TraceQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Dropped returns how many events were discarded on overflow
func (q *TraceQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Reset discards queued events
func (q *TraceQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.head, q.count = 0, 0
}

// Mark is the visual state of one cell in the search replay
type Mark uint8

const (
	MarkNone Mark = iota
	MarkOpen
	MarkExplored
	MarkPath
	MarkStart
	MarkEnd
)

// TraceBoard accumulates drained trace events into per-cell marks
// A start event clears the board, so each search replays on a clean slate
type TraceBoard struct {
	width, height int
	marks         []Mark
	g, h          []int
}

func NewTraceBoard(width, height int) *TraceBoard {
	size := width * height
	return &TraceBoard{
		width:  width,
		height: height,
		marks:  make([]Mark, size),
		g:      make([]int, size),
		h:      make([]int, size),
	}
}

// Apply folds one event into the board
func (b *TraceBoard) Apply(ev navigation.TraceEvent) {
	if ev.X < 0 || ev.Y < 0 || ev.X >= b.width || ev.Y >= b.height {
		return
	}
	i := ev.Y*b.width + ev.X

	switch ev.Kind {
	case navigation.TraceStart:
		b.Clear()
		b.marks[i] = MarkStart
	case navigation.TraceEnd:
		b.marks[i] = MarkEnd
	case navigation.TraceOpen:
		if b.marks[i] == MarkNone {
			b.marks[i] = MarkOpen
		}
	case navigation.TraceExplored:
		if b.marks[i] == MarkNone || b.marks[i] == MarkOpen {
			b.marks[i] = MarkExplored
		}
	case navigation.TraceFinalPath:
		if b.marks[i] != MarkStart && b.marks[i] != MarkEnd {
			b.marks[i] = MarkPath
		}
	case navigation.TraceCost:
		b.g[i], b.h[i] = ev.G, ev.H
	}
}

func (b *TraceBoard) Clear() {
	clear(b.marks)
	clear(b.g)
	clear(b.h)
}

// Mark returns the state of cell (x, y), MarkNone out of bounds
func (b *TraceBoard) Mark(x, y int) Mark {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return MarkNone
	}
	return b.marks[y*b.width+x]
}

// Costs returns the last g and h reported for cell (x, y)
func (b *TraceBoard) Costs(x, y int) (g, h int) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, 0
	}
	i := y*b.width + x
	return b.g[i], b.h[i]
}
