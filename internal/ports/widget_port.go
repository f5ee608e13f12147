package ports

import (
	"context"

	"slider-button/internal/domain/model"
	"slider-button/internal/domain/projection"
)

// StateProvider reads the current view of an entity.
type StateProvider interface {
	GetEntity(ctx context.Context, ref model.EntityRef) (model.Entity, error)
}

// CommandSink writes a new value or a toggle to an entity.
type CommandSink interface {
	SetValue(ctx context.Context, e model.Entity, value float64) error
	Toggle(ctx context.Context, e model.Entity) error
}

// ActionDispatcher runs the action configured for a gesture.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, kind model.ActionKind, action *model.ActionConfig, e model.Entity) error
}

// HostPort receives actions only the host can perform (more-info, navigate, url).
type HostPort interface {
	HostAction(ctx context.Context, action model.HostAction) error
}

// View is the rendering side of one widget instance.
type View interface {
	Render(f projection.Frame)
	Capture(target model.Target, pointerID int)
	Release(target model.Target, pointerID int)
}

// MetricsRecorder counts what the widget does. Implementations must be safe
// for concurrent use.
type MetricsRecorder interface {
	Gesture(target model.Target, kind string)
	Command(service string, err error)
	DragCancelled()
}
