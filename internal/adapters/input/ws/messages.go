package ws

import (
	"fmt"
	"time"

	"slider-button/internal/domain/model"
	"slider-button/internal/domain/projection"
)

// inbound is a message from the host. Only pointer messages exist today.
type inbound struct {
	Type      string     `json:"type"`
	Target    string     `json:"target"`
	Kind      string     `json:"kind"`
	PointerID int        `json:"pointer_id"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Rect      model.Rect `json:"rect"`
}

func (m inbound) pointer(at time.Time) (model.Target, model.PointerEvent, error) {
	if m.Type != "pointer" {
		return "", model.PointerEvent{}, fmt.Errorf("unknown message type %q", m.Type)
	}

	target := model.Target(m.Target)
	switch target {
	case "":
		target = model.TargetSlider
	case model.TargetSlider, model.TargetIcon, model.TargetAction:
	default:
		return "", model.PointerEvent{}, fmt.Errorf("unknown target %q", m.Target)
	}

	kind := model.PointerKind(m.Kind)
	switch kind {
	case model.PointerDown, model.PointerMove, model.PointerUp, model.PointerCancel, model.PointerLostCapture:
	default:
		return "", model.PointerEvent{}, fmt.Errorf("unknown pointer kind %q", m.Kind)
	}

	return target, model.PointerEvent{
		Kind:      kind,
		PointerID: m.PointerID,
		Pos:       model.Point{X: m.X, Y: m.Y},
		Rect:      m.Rect,
		At:        at,
	}, nil
}

type frameMessage struct {
	Type     string `json:"type"`
	WidgetID string `json:"widget_id"`
	projection.Frame
}

type pointerMessage struct {
	Type      string       `json:"type"`
	Target    model.Target `json:"target"`
	PointerID int          `json:"pointer_id"`
}

type actionMessage struct {
	Type string `json:"type"`
	model.HostAction
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
