// Package gesture turns raw pointer events into tap, double tap, hold and drag
// outputs.
//
// A contact moves through Idle -> Pressed -> {Dragging | HeldStill} -> Idle.
// After a qualifying release with double tap enabled the classifier also
// waits for a second tap; that window runs independently of the contact
// state, so a second press may start while it is open.
package gesture

import (
	"fmt"
	"math"
	"time"

	"slider-button/internal/domain/model"
)

const (
	DefaultHoldTime            = 500 * time.Millisecond
	DefaultMaxClickTime        = 250 * time.Millisecond
	DefaultDoubleTapWindow     = 250 * time.Millisecond
	DefaultHoldCancelDistance  = 10.0 // pixels
	DefaultDragConfirmDistance = 15.0 // pixels
)

// Config is read once per render. The zero value has everything disabled;
// start from DefaultConfig.
type Config struct {
	HoldTime            time.Duration
	MaxClickTime        time.Duration
	DoubleTapWindow     time.Duration
	HoldCancelDistance  float64
	DragConfirmDistance float64

	HoldEnabled      bool
	DoubleTapEnabled bool
	SlidingEnabled   bool

	// Vertical selects the Y axis for the drag-confirm threshold.
	Vertical bool
}

func DefaultConfig() Config {
	return Config{
		HoldTime:            DefaultHoldTime,
		MaxClickTime:        DefaultMaxClickTime,
		DoubleTapWindow:     DefaultDoubleTapWindow,
		HoldCancelDistance:  DefaultHoldCancelDistance,
		DragConfirmDistance: DefaultDragConfirmDistance,
		HoldEnabled:         true,
		SlidingEnabled:      true,
	}
}

// sanitize replaces unusable timings with the defaults and disables hold or
// double tap when their timing cannot work.
func (c Config) sanitize() Config {
	if c.HoldTime <= 0 {
		c.HoldEnabled = false
	}
	if c.DoubleTapWindow <= 0 {
		c.DoubleTapEnabled = false
	}
	if c.MaxClickTime <= 0 {
		c.MaxClickTime = DefaultMaxClickTime
	}
	if c.HoldCancelDistance <= 0 {
		c.HoldCancelDistance = DefaultHoldCancelDistance
	}
	if c.DragConfirmDistance < c.HoldCancelDistance {
		c.DragConfirmDistance = c.HoldCancelDistance
	}
	return c
}

type Kind int

const (
	Tap Kind = iota
	DoubleTap
	Hold
	DragStart
	DragUpdate
	DragEnd
	DragCancel
	Capture
	Release
)

func (k Kind) String() string {
	switch k {
	case Tap:
		return "tap"
	case DoubleTap:
		return "double_tap"
	case Hold:
		return "hold"
	case DragStart:
		return "drag_start"
	case DragUpdate:
		return "drag_update"
	case DragEnd:
		return "drag_end"
	case DragCancel:
		return "drag_cancel"
	case Capture:
		return "capture"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("gesture.Kind(%d)", int(k))
	}
}

// Action maps the terminal kinds to the action they select.
func (k Kind) Action() (model.ActionKind, bool) {
	switch k {
	case Tap:
		return model.ActionKindTap, true
	case DoubleTap:
		return model.ActionKindDoubleTap, true
	case Hold:
		return model.ActionKindHold, true
	}
	return "", false
}

// Output is one classified event.
type Output struct {
	Kind      Kind
	PointerID int
	Pos       model.Point
	Rect      model.Rect
	At        time.Time
}

type State int

const (
	Idle State = iota
	Pressed
	Dragging
	HeldStill
	// Spent swallows the rest of a contact whose drag was cut short by a
	// configuration change.
	Spent
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	case HeldStill:
		return "held"
	case Spent:
		return "spent"
	default:
		return fmt.Sprintf("gesture.State(%d)", int(s))
	}
}

// session is the single active contact.
type session struct {
	pointerID int
	start     model.Point
	startAt   time.Time
	moved     bool
	captured  bool
	hold      Timer
	last      model.PointerEvent
}

// Classifier is not safe for concurrent use: pointer events and timer
// callbacks must arrive on one goroutine.
type Classifier struct {
	cfg   Config
	sched Scheduler
	emit  func(Output)

	state   State
	session *session
	gen     uint64

	pendingTap   Timer
	pendingEvent model.PointerEvent
	tapToken     uint64
}

func NewClassifier(cfg Config, sched Scheduler, emit func(Output)) *Classifier {
	if emit == nil {
		emit = func(Output) {}
	}
	return &Classifier{cfg: cfg.sanitize(), sched: sched, emit: emit}
}

func (c *Classifier) State() State { return c.state }

// AwaitingSecondTap reports whether a double-tap window is open.
func (c *Classifier) AwaitingSecondTap() bool { return c.pendingTap != nil }

// Config returns the sanitized configuration in effect.
func (c *Classifier) Config() Config { return c.cfg }

// SetConfig swaps the configuration. A drag in progress is cancelled when
// sliding gets disabled, and an open double-tap window resolves to a tap when
// double tap gets disabled.
func (c *Classifier) SetConfig(cfg Config) {
	c.cfg = cfg.sanitize()
	if c.state == Dragging && !c.cfg.SlidingEnabled {
		c.out(DragCancel, c.session.last)
		c.state = Spent
	}
	if c.pendingTap != nil && !c.cfg.DoubleTapEnabled {
		c.flushPendingTap()
	}
	if c.session != nil && !c.cfg.HoldEnabled {
		c.stopHold()
	}
}

// Handle feeds one raw pointer event.
func (c *Classifier) Handle(ev model.PointerEvent) {
	switch ev.Kind {
	case model.PointerDown:
		c.down(ev)
	case model.PointerMove:
		c.move(ev)
	case model.PointerUp:
		c.up(ev)
	case model.PointerCancel, model.PointerLostCapture:
		c.cancel(ev)
	}
}

// Close ends any contact as cancelled and stops all timers without emitting
// pending taps.
func (c *Classifier) Close() {
	if c.session != nil {
		c.cancel(c.session.last)
	}
	if c.pendingTap != nil {
		c.pendingTap.Stop()
		c.pendingTap = nil
		c.tapToken++
	}
}

func (c *Classifier) owns(ev model.PointerEvent) bool {
	return c.session != nil && c.session.pointerID == ev.PointerID
}

func (c *Classifier) down(ev model.PointerEvent) {
	if c.session != nil {
		if !c.owns(ev) {
			// first pointer wins
			return
		}
		c.cancel(c.session.last)
	}

	c.gen++
	gen := c.gen
	c.session = &session{
		pointerID: ev.PointerID,
		start:     ev.Pos,
		startAt:   ev.At,
		last:      ev,
	}
	c.state = Pressed

	if c.cfg.SlidingEnabled {
		c.session.captured = true
		c.out(Capture, ev)
	}
	if c.cfg.HoldEnabled {
		c.session.hold = c.sched.AfterFunc(c.cfg.HoldTime, func() { c.fireHold(gen) })
	}
}

func (c *Classifier) move(ev model.PointerEvent) {
	if !c.owns(ev) {
		return
	}
	s := c.session
	s.last = ev

	switch c.state {
	case Pressed:
		dx, dy := ev.Pos.X-s.start.X, ev.Pos.Y-s.start.Y
		if !s.moved && math.Hypot(dx, dy) > c.cfg.HoldCancelDistance {
			s.moved = true
			c.stopHold()
		}
		axis := math.Abs(dx)
		if c.cfg.Vertical {
			axis = math.Abs(dy)
		}
		if c.cfg.SlidingEnabled && axis > c.cfg.DragConfirmDistance {
			s.moved = true
			c.stopHold()
			c.flushPendingTap()
			c.state = Dragging
			c.out(DragStart, ev)
			c.out(DragUpdate, ev)
		}
	case Dragging:
		c.out(DragUpdate, ev)
	}
}

func (c *Classifier) up(ev model.PointerEvent) {
	if !c.owns(ev) {
		return
	}
	s := c.session
	s.last = ev
	c.stopHold()

	state := c.state
	c.end(ev)

	if state != Pressed || s.moved || ev.At.Sub(s.startAt) >= c.cfg.MaxClickTime {
		return
	}
	c.tap(ev)
}

func (c *Classifier) cancel(ev model.PointerEvent) {
	if !c.owns(ev) {
		return
	}
	c.stopHold()
	if c.state == Dragging {
		c.out(DragCancel, ev)
		c.state = Spent
	}
	c.end(ev)
}

// end closes the session. DragEnd goes out before Release so the value is
// committed while the pointer is still captured.
func (c *Classifier) end(ev model.PointerEvent) {
	if c.state == Dragging {
		c.out(DragEnd, ev)
	}
	if c.session.captured {
		c.out(Release, ev)
	}
	c.session = nil
	c.state = Idle
}

func (c *Classifier) tap(ev model.PointerEvent) {
	if !c.cfg.DoubleTapEnabled {
		c.out(Tap, ev)
		return
	}
	if c.pendingTap != nil {
		c.pendingTap.Stop()
		c.pendingTap = nil
		c.tapToken++
		c.out(DoubleTap, ev)
		return
	}
	c.tapToken++
	token := c.tapToken
	c.pendingEvent = ev
	c.pendingTap = c.sched.AfterFunc(c.cfg.DoubleTapWindow, func() { c.fireTapWindow(token) })
}

func (c *Classifier) fireHold(gen uint64) {
	if gen != c.gen || c.session == nil || c.state != Pressed || c.session.moved {
		return
	}
	c.session.hold = nil
	c.state = HeldStill
	c.flushPendingTap()
	c.out(Hold, c.session.last)
}

func (c *Classifier) fireTapWindow(token uint64) {
	if token != c.tapToken || c.pendingTap == nil {
		return
	}
	c.pendingTap = nil
	c.out(Tap, c.pendingEvent)
}

// flushPendingTap emits a waiting single tap right away, so actions keep the
// order of the gestures that produced them.
func (c *Classifier) flushPendingTap() {
	if c.pendingTap == nil {
		return
	}
	c.pendingTap.Stop()
	c.pendingTap = nil
	c.tapToken++
	c.out(Tap, c.pendingEvent)
}

func (c *Classifier) stopHold() {
	if c.session != nil && c.session.hold != nil {
		c.session.hold.Stop()
		c.session.hold = nil
	}
}

func (c *Classifier) out(k Kind, ev model.PointerEvent) {
	c.emit(Output{Kind: k, PointerID: ev.PointerID, Pos: ev.Pos, Rect: ev.Rect, At: ev.At})
}
