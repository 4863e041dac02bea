package navigation

// Heap is a binary min-heap of items addressed by stable integer handles
// The handle → slot table lives in the heap, so items carry no queue state and
// several heaps may order the same arena independently
type Heap[T any] struct {
	items  []T
	slots  []int // handle -> position in items, -1 when absent
	less   func(a, b T) bool
	handle func(T) int
}

// NewHeap creates a heap ordered by less; handle maps an item to its arena index
// capacity sizes the slot table and grows on demand
func NewHeap[T any](capacity int, less func(a, b T) bool, handle func(T) int) *Heap[T] {
	h := &Heap[T]{
		items:  make([]T, 0, capacity/4),
		slots:  make([]int, capacity),
		less:   less,
		handle: handle,
	}
	for i := range h.slots {
		h.slots[i] = -1
	}
	return h
}

// Len returns number of items held
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Contains reports membership in O(1)
func (h *Heap[T]) Contains(item T) bool {
	id := h.handle(item)
	return id >= 0 && id < len(h.slots) && h.slots[id] >= 0
}

// Add inserts item; adding an item already held is treated as Update
func (h *Heap[T]) Add(item T) {
	id := h.handle(item)
	h.grow(id)
	if h.slots[id] >= 0 {
		h.items[h.slots[id]] = item
		h.Update(item)
		return
	}
	h.items = append(h.items, item)
	i := len(h.items) - 1
	h.slots[id] = i
	h.siftUp(i)
}

// RemoveBest pops the minimum item, panics with ErrHeapUnderflow when empty
func (h *Heap[T]) RemoveBest() T {
	n := len(h.items)
	if n == 0 {
		panic(ErrHeapUnderflow)
	}
	best := h.items[0]
	h.swap(0, n-1)
	h.items = h.items[:n-1]
	h.slots[h.handle(best)] = -1
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return best
}

// Peek returns the minimum item without removing it
func (h *Heap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Update restores order after the item's priority changed, in either direction
// Items not held are ignored
func (h *Heap[T]) Update(item T) {
	if !h.Contains(item) {
		return
	}
	i := h.slots[h.handle(item)]
	h.items[i] = item
	if !h.siftUp(i) {
		h.siftDown(i)
	}
}

// Reset empties the heap, keeping allocated storage
func (h *Heap[T]) Reset() {
	for _, item := range h.items {
		h.slots[h.handle(item)] = -1
	}
	h.items = h.items[:0]
}

func (h *Heap[T]) grow(id int) {
	if id < len(h.slots) {
		return
	}
	n := len(h.slots)*2 + 1
	if n <= id {
		n = id + 1
	}
	slots := make([]int, n)
	copy(slots, h.slots)
	for i := len(h.slots); i < n; i++ {
		slots[i] = -1
	}
	h.slots = slots
}

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.slots[h.handle(h.items[i])] = i
	h.slots[h.handle(h.items[j])] = j
}

// siftUp reports whether the item moved
func (h *Heap[T]) siftUp(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && h.less(h.items[right], h.items[left]) {
			smallest = right
		}
		if !h.less(h.items[smallest], h.items[i]) {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}
