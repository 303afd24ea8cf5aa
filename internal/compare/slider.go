package compare

import "sync"

// Slider is the reveal position of one compare surface.
type Slider struct {
	hub *Hub

	mu       sync.Mutex
	pos      float64
	bounds   Bounds
	capture  *Capture
	onChange func(pos float64)
}

// NewSlider creates a slider at DefaultPosition listening on hub.
func NewSlider(hub *Hub) *Slider {
	return &Slider{hub: hub, pos: DefaultPosition}
}

// OnChange registers a callback invoked after each position update.
func (s *Slider) OnChange(fn func(pos float64)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// SetBounds records the current extent of the surface. Bounds are read on
// every move, so layout changes mid-drag are honoured.
func (s *Slider) SetBounds(b Bounds) {
	s.mu.Lock()
	s.bounds = b
	s.mu.Unlock()
}

// Position returns the current reveal percentage.
func (s *Slider) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Dragging reports whether the slider holds a capture.
func (s *Slider) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture != nil
}

// Begin enters dragging mode on pointer-down. The position itself does not
// change until the first move.
func (s *Slider) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capture != nil {
		return
	}
	s.capture = s.hub.Acquire(s.move, s.end)
}

// Close releases any held capture.
func (s *Slider) Close() {
	s.end()
}

// Nudge moves the position by delta percentage points.
func (s *Slider) Nudge(delta float64) {
	s.set(func(p float64) float64 { return clamp(p + delta) })
}

// Reset moves the slider back to DefaultPosition.
func (s *Slider) Reset() {
	s.set(func(float64) float64 { return DefaultPosition })
}

func (s *Slider) move(x float64) {
	s.mu.Lock()
	if s.capture == nil {
		s.mu.Unlock()
		return
	}
	s.pos = Split(x, s.bounds)
	pos, fn := s.pos, s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(pos)
	}
}

func (s *Slider) end() {
	s.mu.Lock()
	c := s.capture
	s.capture = nil
	s.mu.Unlock()

	if c != nil {
		c.Release()
	}
}

func (s *Slider) set(update func(float64) float64) {
	s.mu.Lock()
	s.pos = update(s.pos)
	pos, fn := s.pos, s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(pos)
	}
}
