package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"slider-button/internal/domain/model"
	"slider-button/internal/ports"
)

// ActionService runs configured gesture actions. Toggles go through the
// command sink, service calls straight to Home Assistant, and the rest is
// handed to the host.
type ActionService struct {
	sink   ports.CommandSink
	haPort ports.HomeAssistantPort
	host   ports.HostPort
	logger *slog.Logger
}

func NewActionService(sink ports.CommandSink, haPort ports.HomeAssistantPort, host ports.HostPort, logger *slog.Logger) *ActionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionService{sink: sink, haPort: haPort, host: host, logger: logger}
}

func (a *ActionService) Dispatch(ctx context.Context, kind model.ActionKind, action *model.ActionConfig, e model.Entity) error {
	switch action.Kind() {
	case model.ActionNone:
		return nil

	case model.ActionToggle:
		return a.sink.Toggle(ctx, e)

	case model.ActionCallService:
		domain, service, ok := strings.Cut(action.ServiceName(), ".")
		if !ok || domain == "" || service == "" {
			return fmt.Errorf("%s action service %q: %w", kind, action.ServiceName(), model.ErrInvalidConfig)
		}
		return a.haPort.CallService(ctx, domain, service, action.Payload())

	default:
		if a.host == nil {
			a.logger.Warn("host action dropped, no host attached", "action", action.Kind(), "gesture", kind)
			return nil
		}
		target := action.Entity
		if target == "" {
			target = e.Ref.ID
		}
		return a.host.HostAction(ctx, model.HostAction{
			Action:         action.Kind(),
			Gesture:        kind,
			EntityID:       target,
			NavigationPath: action.NavigationPath,
			URLPath:        action.URLPath,
		})
	}
}
