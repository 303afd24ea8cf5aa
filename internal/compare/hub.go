package compare

import (
	"sort"
	"sync"
)

// Hub fans out window-scope pointer events (move, release) to whichever
// surfaces currently hold a capture. It stands in for the global event
// target that sees pointer movement outside the compare surface itself.
type Hub struct {
	mu     sync.Mutex
	nextID int
	held   map[int]*Capture
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{held: make(map[int]*Capture)}
}

// Capture is a registration of move and end listeners on a Hub.
type Capture struct {
	hub    *Hub
	id     int
	once   sync.Once
	onMove func(x float64)
	onEnd  func()
}

// Acquire attaches listeners until the returned capture is released.
func (h *Hub) Acquire(onMove func(x float64), onEnd func()) *Capture {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	c := &Capture{hub: h, id: h.nextID, onMove: onMove, onEnd: onEnd}
	h.held[c.id] = c
	return c
}

// Release detaches the capture's listeners. Safe to call more than once.
func (c *Capture) Release() {
	c.once.Do(func() {
		c.hub.mu.Lock()
		delete(c.hub.held, c.id)
		c.hub.mu.Unlock()
	})
}

// Move delivers a pointer position to every held capture, synchronously.
func (h *Hub) Move(x float64) {
	for _, c := range h.snapshot() {
		if c.onMove != nil {
			c.onMove(x)
		}
	}
}

// End delivers a pointer release to every held capture.
func (h *Hub) End() {
	for _, c := range h.snapshot() {
		if c.onEnd != nil {
			c.onEnd()
		}
	}
}

// Listeners reports how many captures are attached.
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.held)
}

// snapshot copies held captures so listeners run without the lock and may release themselves.
func (h *Hub) snapshot() []*Capture {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Capture, 0, len(h.held))
	for _, c := range h.held {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
