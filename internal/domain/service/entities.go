package service

import (
	"context"
	"fmt"
	"log/slog"

	"slider-button/internal/domain/model"
	"slider-button/internal/domain/translator"
	"slider-button/internal/ports"
)

// EntityService reads entities from Home Assistant and writes slider values
// back through the per-domain translators.
type EntityService struct {
	haPort            ports.HomeAssistantPort
	translatorFactory *translator.Factory
	metrics           ports.MetricsRecorder
	logger            *slog.Logger
}

func NewEntityService(haPort ports.HomeAssistantPort, metrics ports.MetricsRecorder, logger *slog.Logger) *EntityService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EntityService{
		haPort:            haPort,
		translatorFactory: translator.NewFactory(),
		metrics:           metrics,
		logger:            logger,
	}
}

// GetEntity looks ref up in the shared state snapshot. On any failure it still
// returns an unavailable entity of the right kind next to the error, so callers
// can render the fallback without special cases.
func (s *EntityService) GetEntity(ctx context.Context, ref model.EntityRef) (model.Entity, error) {
	states, err := s.haPort.GetRawStates(ctx)
	if err != nil {
		return s.Unavailable(ref), err
	}
	for _, st := range states {
		if id, _ := st["entity_id"].(string); id == ref.ID {
			return s.translate(st, ref), nil
		}
	}
	return s.Unavailable(ref), fmt.Errorf("%s: %w", ref.ID, model.ErrUnknownEntity)
}

// Lookup fetches ref directly, skipping the shared snapshot.
func (s *EntityService) Lookup(ctx context.Context, ref model.EntityRef) (model.Entity, error) {
	st, err := s.haPort.GetRawState(ctx, ref.ID)
	if err != nil {
		return s.Unavailable(ref), err
	}
	return s.translate(st, ref), nil
}

// Unavailable is the placeholder entity used before the first read and after failed ones.
func (s *EntityService) Unavailable(ref model.EntityRef) model.Entity {
	e, _ := s.translatorFactory.Translate(map[string]interface{}{"state": model.StateUnavailable}, ref)
	return e
}

func (s *EntityService) translate(st map[string]interface{}, ref model.EntityRef) model.Entity {
	e, err := s.translatorFactory.Translate(st, ref)
	if err != nil {
		s.logger.Warn("invalid to_value formula, using raw value", "entity", ref.ID, "error", err)
	}
	return e
}

func (s *EntityService) SetValue(ctx context.Context, e model.Entity, value float64) error {
	cmd, err := s.translatorFactory.Command(e, value)
	if err != nil {
		s.logger.Warn("invalid to_entity formula, sending slider value", "entity", e.Ref.ID, "error", err)
	}
	return s.call(ctx, e, cmd)
}

func (s *EntityService) Toggle(ctx context.Context, e model.Entity) error {
	cmd := s.translatorFactory.GetTranslator(e.Ref).ToggleCommand(e)
	return s.call(ctx, e, cmd)
}

func (s *EntityService) call(ctx context.Context, e model.Entity, cmd model.Command) error {
	data := make(map[string]interface{}, len(cmd.Params)+1)
	for k, v := range cmd.Params {
		data[k] = v
	}
	if !cmd.OmitEntityID {
		data["entity_id"] = e.Ref.ID
	}

	err := s.haPort.CallService(ctx, cmd.Domain, cmd.Service, data)
	s.metrics.Command(cmd.Name(), err)
	if err != nil {
		return fmt.Errorf("%s for %s: %w", cmd.Name(), e.Ref.ID, err)
	}
	s.logger.Debug("service called", "service", cmd.Name(), "entity", e.Ref.ID, "data", data)
	return nil
}
