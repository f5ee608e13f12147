package model

import "time"

type PointerKind string

const (
	PointerDown        PointerKind = "down"
	PointerMove        PointerKind = "move"
	PointerUp          PointerKind = "up"
	PointerCancel      PointerKind = "cancel"
	PointerLostCapture PointerKind = "lostcapture"
)

type Point struct {
	X, Y float64
}

// Rect is the slider's bounding box in the same coordinate space as pointer events.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointerEvent is one raw pointer sample delivered by the host.
type PointerEvent struct {
	Kind      PointerKind
	PointerID int
	Pos       Point
	Rect      Rect
	At        time.Time
}

// ActionKind is the gesture that selects which configured action runs.
type ActionKind string

const (
	ActionKindTap       ActionKind = "tap"
	ActionKindDoubleTap ActionKind = "double_tap"
	ActionKindHold      ActionKind = "hold"
)

// Target is the card surface a pointer stream belongs to.
type Target string

const (
	TargetSlider Target = "slider"
	TargetIcon   Target = "icon"
	TargetAction Target = "action"
)
