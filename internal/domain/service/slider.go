package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slider-button/internal/domain/drag"
	"slider-button/internal/domain/gesture"
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/projection"
	"slider-button/internal/domain/value"
	"slider-button/internal/ports"
)

const commandTimeout = 10 * time.Second

var targets = []model.Target{model.TargetSlider, model.TargetIcon, model.TargetAction}

type Options struct {
	ID   string
	Card model.CardConfig

	// Gesture carries the timings and distances; the enable flags are derived
	// from the card per target.
	Gesture   gesture.Config
	Scheduler gesture.Scheduler

	Sink    ports.CommandSink
	Actions ports.ActionDispatcher
	View    ports.View
	Metrics ports.MetricsRecorder
	Logger  *slog.Logger

	// OnCommand runs after every command or action finishes, on the goroutine
	// that ran it.
	OnCommand func()
	// Exec runs commands and actions. Nil starts a goroutine per call.
	Exec func(func())
}

// Slider is one widget instance: a classifier per card surface, the value
// model and the drag in progress. It is not safe for concurrent use; drive it
// from a single goroutine such as a Runner.
type Slider struct {
	id      string
	card    model.CardConfig
	base    gesture.Config
	sink    ports.CommandSink
	actions ports.ActionDispatcher
	view    ports.View
	metrics ports.MetricsRecorder
	logger  *slog.Logger
	after   func()
	exec    func(func())

	entity    model.Entity
	model     value.Model
	committed float64
	drag      *drag.Session

	classifiers map[model.Target]*gesture.Classifier
}

func NewSlider(opts Options) (*Slider, error) {
	if err := opts.Card.Validate(); err != nil {
		return nil, fmt.Errorf("card %q: %w", opts.Card.ID, err)
	}
	if opts.Scheduler == nil || opts.Sink == nil || opts.Actions == nil {
		return nil, errors.New("slider needs a scheduler, a command sink and an action dispatcher")
	}

	card := opts.Card.WithDefaults()
	s := &Slider{
		id:          opts.ID,
		card:        card,
		base:        opts.Gesture,
		sink:        opts.Sink,
		actions:     opts.Actions,
		view:        opts.View,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		after:       opts.OnCommand,
		exec:        opts.Exec,
		classifiers: make(map[model.Target]*gesture.Classifier, len(targets)),
	}
	if s.view == nil {
		s.view = noopView{}
	}
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.after == nil {
		s.after = func() {}
	}
	if s.exec == nil {
		s.exec = func(f func()) { go f() }
	}
	s.logger = s.logger.With("widget", s.id, "entity", card.Entity)

	// Nothing is known until the first state arrives.
	s.setEntity(model.Entity{Ref: card.Ref(), Kind: model.KindPercentage, State: model.StateUnavailable})

	for _, target := range targets {
		target := target
		s.classifiers[target] = gesture.NewClassifier(s.gestureConfig(target), opts.Scheduler, func(o gesture.Output) {
			s.onGesture(target, o)
		})
	}
	return s, nil
}

func (s *Slider) ID() string             { return s.id }
func (s *Slider) Card() model.CardConfig { return s.card }
func (s *Slider) Entity() model.Entity   { return s.entity }
func (s *Slider) Committed() float64     { return s.committed }

// Live returns the in-progress drag value, if a drag is running.
func (s *Slider) Live() (float64, bool) {
	if s.drag == nil {
		return 0, false
	}
	return s.drag.Live(), true
}

// UpdateState takes a fresh entity read. A drag in progress keeps its anchor;
// losing availability mid-drag cancels it.
func (s *Slider) UpdateState(e model.Entity) {
	if e.Ref.ID == "" {
		e.Ref = s.card.Ref()
	}
	changed := e.Available != s.entity.Available || e.State != s.entity.State || e.Raw != s.entity.Raw
	s.setEntity(e)
	if c, ok := s.classifiers[model.TargetSlider]; ok {
		c.SetConfig(s.gestureConfig(model.TargetSlider))
	}
	if changed && s.card.Debug {
		s.logger.Debug("state updated", "state", e.State, "raw", e.Raw, "available", e.Available)
	}
	s.render()
}

func (s *Slider) setEntity(e model.Entity) {
	s.entity = e
	s.model = value.New(e, *s.card.Slider)
	s.committed = s.model.Committed(e)
}

// HandlePointer feeds a raw pointer event for one card surface.
func (s *Slider) HandlePointer(target model.Target, ev model.PointerEvent) {
	c, ok := s.classifiers[target]
	if !ok {
		s.logger.Warn("pointer event for unknown target", "target", target)
		return
	}
	c.Handle(ev)
}

// Frame projects the current state; it can be called at any time.
func (s *Slider) Frame() projection.Frame {
	v, changing := s.committed, false
	if s.drag != nil {
		v, changing = s.drag.Live(), true
	}
	return projection.Project(projection.Input{
		Card:     s.card,
		Entity:   s.entity,
		Model:    s.model,
		Value:    v,
		Changing: changing,
	})
}

// Close abandons any contact and stops pending timers.
func (s *Slider) Close() {
	for _, target := range targets {
		s.classifiers[target].Close()
	}
	s.drag = nil
}

func (s *Slider) gestureConfig(target model.Target) gesture.Config {
	cfg := s.base
	cfg.HoldEnabled, cfg.DoubleTapEnabled, cfg.SlidingEnabled, cfg.Vertical = false, false, false, false
	if target != model.TargetSlider {
		return cfg
	}
	sl := s.card.Slider
	cfg.HoldEnabled = sl.HoldAction.Enabled()
	cfg.DoubleTapEnabled = sl.DoubleTapAction.Enabled()
	cfg.SlidingEnabled = s.entity.Available && !sl.SlidingDisabled()
	cfg.Vertical = sl.Direction.Vertical()
	return cfg
}

func (s *Slider) onGesture(target model.Target, o gesture.Output) {
	if s.card.Debug {
		s.logger.Debug("gesture", "target", target, "kind", o.Kind.String(), "pointer", o.PointerID)
	}

	switch o.Kind {
	case gesture.Capture:
		s.view.Capture(target, o.PointerID)

	case gesture.Release:
		s.view.Release(target, o.PointerID)

	case gesture.DragStart:
		if target != model.TargetSlider || !s.entity.Available {
			return
		}
		s.drag = drag.Start(s.model, s.card.Slider.Direction, s.committed, o.Pos, o.Rect)
		s.render()

	case gesture.DragUpdate:
		if s.drag == nil {
			return
		}
		s.drag.Update(o.Pos, o.Rect)
		s.render()

	case gesture.DragEnd:
		if s.drag == nil {
			return
		}
		v := s.drag.Live()
		s.drag = nil
		s.committed = v
		s.metrics.Gesture(target, o.Kind.String())
		s.commit(v)
		s.render()

	case gesture.DragCancel:
		if s.drag == nil {
			return
		}
		s.drag = nil
		s.metrics.DragCancelled()
		s.render()

	default:
		kind, ok := o.Kind.Action()
		if !ok {
			return
		}
		s.metrics.Gesture(target, o.Kind.String())
		s.dispatch(target, kind)
	}
}

func (s *Slider) actionFor(target model.Target, kind model.ActionKind) *model.ActionConfig {
	switch target {
	case model.TargetIcon:
		if kind == model.ActionKindTap {
			return s.card.Icon.TapAction
		}
	case model.TargetAction:
		if kind == model.ActionKindTap {
			return s.card.ActionButton.TapAction
		}
	default:
		switch kind {
		case model.ActionKindTap:
			return s.card.Slider.TapAction
		case model.ActionKindHold:
			return s.card.Slider.HoldAction
		case model.ActionKindDoubleTap:
			return s.card.Slider.DoubleTapAction
		}
	}
	return nil
}

func (s *Slider) dispatch(target model.Target, kind model.ActionKind) {
	action := s.actionFor(target, kind)
	if !action.Enabled() {
		return
	}
	e := s.entity
	s.exec(func() {
		defer s.after()
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := s.actions.Dispatch(ctx, kind, action, e); err != nil {
			s.logger.Error("Error dispatching action", "target", target, "gesture", kind, "action", action.Kind(), "error", err)
		}
	})
}

func (s *Slider) commit(v float64) {
	e := s.entity
	if s.card.Debug {
		s.logger.Debug("commit", "value", v)
	}
	s.exec(func() {
		defer s.after()
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := s.sink.SetValue(ctx, e, v); err != nil {
			s.logger.Error("Error setting HA state", "value", v, "error", err)
		}
	})
}

func (s *Slider) render() {
	s.view.Render(s.Frame())
}

type noopView struct{}

func (noopView) Render(projection.Frame)   {}
func (noopView) Capture(model.Target, int) {}
func (noopView) Release(model.Target, int) {}

type noopMetrics struct{}

func (noopMetrics) Gesture(model.Target, string) {}
func (noopMetrics) Command(string, error)        {}
func (noopMetrics) DragCancelled()               {}
