// Package drag converts confirmed drag movement into a live slider value.
//
// Values move relative to where the drag started: the committed value and the
// pointer's percentage along the slider are both pinned when the drag is
// confirmed, and every update applies only the pointer delta since then.
package drag

import (
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/value"
)

// PointerPercentage is the percentage-equivalent of pos along the direction's
// axis of rect. Right-left and bottom-top run against the screen axis; the
// display invert flag flips the result once more so the filled part of the
// slider keeps following the finger.
func PointerPercentage(pos model.Point, rect model.Rect, dir model.Direction, invert bool) float64 {
	var p float64
	if dir.Vertical() {
		p = axisPercentage(pos.Y, rect.Top, rect.Height)
	} else {
		p = axisPercentage(pos.X, rect.Left, rect.Width)
	}
	if dir.Reversed() != invert {
		p = 100 - p
	}
	return p
}

func axisPercentage(v, start, length float64) float64 {
	if length <= 0 {
		return 0
	}
	return (v - start) * 100 / length
}

// Session is one drag. It is created at drag start and dropped at drag end or
// cancel; nothing in it changes after Start except the live value.
type Session struct {
	model value.Model
	dir   model.Direction

	anchorFraction float64
	anchorPointer  float64

	live float64
}

// Start pins the committed value and the pointer position that confirmed the drag.
func Start(m value.Model, dir model.Direction, committed float64, pos model.Point, rect model.Rect) *Session {
	return &Session{
		model:          m,
		dir:            dir.Normalize(),
		anchorFraction: m.Fraction(committed),
		anchorPointer:  PointerPercentage(pos, rect, dir, m.Invert),
		live:           committed,
	}
}

// Delta is the pointer movement since drag start in percentage points.
func (s *Session) Delta(pos model.Point, rect model.Rect) float64 {
	return PointerPercentage(pos, rect, s.dir, s.model.Invert) - s.anchorPointer
}

// Update moves the live value by the pointer delta, bounded to the slider's
// min_value/max_value and stepped from Min.
func (s *Session) Update(pos model.Point, rect model.Rect) float64 {
	target := value.Clamp(s.anchorFraction+s.Delta(pos, rect), 0, 100)
	s.live = s.model.SnapWithin(s.model.FromPercentage(target), s.model.SubMin, s.model.SubMax)
	return s.live
}

func (s *Session) Live() float64 { return s.live }
