package domain

import (
	"math"
	"time"
)

// Session is the per-viewer presentation state: scroll position, drag
// anchors, hidden channels, fullscreen flag. Transient, rebuilt on
// every page load, never persisted.
type Session struct {
	ID               string          `json:"id"`
	Mode             ScrollMode      `json:"mode"`
	Offset           float64         `json:"offset"`
	DragAnchorY      float64         `json:"drag_anchor_y"`
	DragAnchorOffset float64         `json:"drag_anchor_offset"`
	LoopHeight       float64         `json:"loop_height"`
	Fullscreen       bool            `json:"fullscreen"`
	Hidden           map[string]bool `json:"hidden"`
	LastActive       time.Time       `json:"-"`
}

// NewSession creates a session in the idle state. loopHeight is the
// exact pixel height of one content block; the wrap below must use the
// same number the renderer duplicated, or the loop seam shows.
func NewSession(id string, loopHeight float64) *Session {
	return &Session{
		ID:         id,
		Mode:       ScrollModeIdle,
		LoopHeight: loopHeight,
		Hidden:     make(map[string]bool),
	}
}

// StartAuto begins auto-scrolling. Dragging is not interrupted.
func (s *Session) StartAuto() {
	if s.Mode == ScrollModeIdle {
		s.Mode = ScrollModeScrolling
	}
}

// Step advances the offset by one per-frame increment. It does nothing
// unless the session is auto-scrolling, which is what suspends the
// automatic increment for the whole duration of a drag.
func (s *Session) Step(step float64) {
	if s.Mode != ScrollModeScrolling || s.LoopHeight <= 0 {
		return
	}
	s.Offset += step
	// Crossing the duplicated-content boundary: subtract exactly one
	// block height so the reset lands on the identical visual position.
	for s.Offset >= s.LoopHeight {
		s.Offset -= s.LoopHeight
	}
}

// BeginDrag records the pointer anchor and suspends auto-scroll.
func (s *Session) BeginDrag(y float64) {
	if s.Mode == ScrollModeDragging {
		return
	}
	s.Mode = ScrollModeDragging
	s.DragAnchorY = y
	s.DragAnchorOffset = s.Offset
}

// DragTo moves the offset relative to the drag anchor. The result is
// wrapped into [0, LoopHeight); the offset never goes negative.
func (s *Session) DragTo(y float64) {
	if s.Mode != ScrollModeDragging || s.LoopHeight <= 0 {
		return
	}
	offset := math.Mod(s.DragAnchorOffset+(s.DragAnchorY-y), s.LoopHeight)
	if offset < 0 {
		offset += s.LoopHeight
	}
	// Adding the height to a tiny negative remainder can round to the
	// height itself; fold that back onto the seam.
	if offset >= s.LoopHeight {
		offset = 0
	}
	s.Offset = offset
}

// EndDrag releases the drag and resumes auto-scrolling.
func (s *Session) EndDrag() {
	if s.Mode != ScrollModeDragging {
		return
	}
	s.Mode = ScrollModeScrolling
}

// SetFullscreen flips the fullscreen flag. Leaving fullscreen stops
// the per-tick stepping; entering it resumes from idle.
func (s *Session) SetFullscreen(on bool) {
	s.Fullscreen = on
	if !on && s.Mode == ScrollModeScrolling {
		s.Mode = ScrollModeIdle
	}
	if on && s.Mode == ScrollModeIdle {
		s.Mode = ScrollModeScrolling
	}
}

// ToggleChannel flips a channel row's visibility and reports whether
// the row is now hidden. Hiding has no other side effects; the layout
// is untouched.
func (s *Session) ToggleChannel(number string) bool {
	if s.Hidden[number] {
		delete(s.Hidden, number)
		return false
	}
	s.Hidden[number] = true
	return true
}

// VisibleCount returns how many of total channels remain visible.
func (s *Session) VisibleCount(total int) int {
	return total - len(s.Hidden)
}
