package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"slider-button/internal/adapters/output/cardfile"
	"slider-button/internal/config"
	"slider-button/internal/domain/gesture"
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/service"
)

// flushWindow is how far the clock runs after the last event so pending
// double-tap windows and holds resolve.
const flushWindow = time.Minute

var replayEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type ReplayCmd struct {
	Cards  string `flag:"" default:"cards.yaml" env:"CARDS_PATH" help:"Card file"`
	Card   string `flag:"" required:"" help:"Card id to replay"`
	State  string `flag:"" required:"" type:"existingfile" help:"Home Assistant state object (JSON)"`
	Events string `flag:"" required:"" type:"existingfile" help:"Pointer events, one JSON object per line"`
}

func (c *ReplayCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	card, err := cardfile.NewRepository(c.Cards).Get(context.Background(), c.Card)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(c.State)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	var state map[string]interface{}
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	events, err := os.Open(c.Events)
	if err != nil {
		return err
	}
	defer events.Close()

	return replay(context.Background(), *card, state, events, os.Stdout, cfg.Gesture())
}

// replayEvent is one line of an events file. t is milliseconds since the
// start of the recording.
type replayEvent struct {
	T         int64                  `json:"t"`
	Type      string                 `json:"type"`
	Target    model.Target           `json:"target"`
	Kind      model.PointerKind      `json:"kind"`
	PointerID int                    `json:"pointer_id"`
	X         float64                `json:"x"`
	Y         float64                `json:"y"`
	Rect      model.Rect             `json:"rect"`
	State     map[string]interface{} `json:"state"`
}

type replayOutput struct {
	T       int64                  `json:"t"`
	Type    string                 `json:"type"`
	Service string                 `json:"service,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Action  *model.HostAction      `json:"action,omitempty"`
	Frame   interface{}            `json:"frame,omitempty"`
}

// replay drives one widget on a virtual clock. Service calls and host actions
// are printed instead of sent; the final frame closes the output.
func replay(ctx context.Context, card model.CardConfig, state map[string]interface{}, events io.Reader, out io.Writer, g gesture.Config) error {
	if state == nil {
		state = map[string]interface{}{"state": model.StateUnavailable}
	}
	if _, ok := state["entity_id"]; !ok {
		state["entity_id"] = card.Entity
	}
	sched := gesture.NewManualScheduler(replayEpoch)
	rec := &recorder{enc: json.NewEncoder(out), sched: sched}
	ha := &offlineHA{state: state, rec: rec}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	entities := service.NewEntityService(ha, nil, logger)
	slider, err := service.NewSlider(service.Options{
		ID:        "replay",
		Card:      card,
		Gesture:   g,
		Scheduler: sched,
		Sink:      entities,
		Actions:   service.NewActionService(entities, ha, rec, logger),
		Logger:    logger,
		Exec:      func(f func()) { f() },
	})
	if err != nil {
		return err
	}
	refresh := func() {
		e, _ := entities.GetEntity(ctx, card.Ref())
		slider.UpdateState(e)
	}
	refresh()

	scanner := bufio.NewScanner(events)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		var ev replayEvent
		if err := json.Unmarshal(text, &ev); err != nil {
			return fmt.Errorf("events line %d: %w", line, err)
		}
		at := replayEpoch.Add(time.Duration(ev.T) * time.Millisecond)
		if at.Before(sched.Now()) {
			return fmt.Errorf("events line %d: t=%d goes back in time", line, ev.T)
		}
		sched.AdvanceTo(at)

		switch ev.Type {
		case "state":
			ha.set(ev.State, card.Entity)
			refresh()
		case "", "pointer":
			target := ev.Target
			if target == "" {
				target = model.TargetSlider
			}
			slider.HandlePointer(target, model.PointerEvent{
				Kind:      ev.Kind,
				PointerID: ev.PointerID,
				Pos:       model.Point{X: ev.X, Y: ev.Y},
				Rect:      ev.Rect,
				At:        at,
			})
		default:
			return fmt.Errorf("events line %d: unknown type %q", line, ev.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	sched.Advance(flushWindow)
	rec.write(replayOutput{Type: "frame", Frame: slider.Frame()})
	slider.Close()
	return rec.err
}

// recorder prints what the widget would have sent out.
type recorder struct {
	mu    sync.Mutex
	enc   *json.Encoder
	sched *gesture.ManualScheduler
	err   error
}

func (r *recorder) write(o replayOutput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.T = r.sched.Now().Sub(replayEpoch).Milliseconds()
	if err := r.enc.Encode(o); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *recorder) HostAction(ctx context.Context, action model.HostAction) error {
	r.write(replayOutput{Type: "action", Action: &action})
	return nil
}

// offlineHA serves a single recorded state and records service calls.
type offlineHA struct {
	mu    sync.Mutex
	state map[string]interface{}
	rec   *recorder
}

func (h *offlineHA) set(state map[string]interface{}, entityID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if state == nil {
		state = map[string]interface{}{"state": model.StateUnavailable}
	}
	if _, ok := state["entity_id"]; !ok {
		state["entity_id"] = entityID
	}
	h.state = state
}

func (h *offlineHA) GetRawState(ctx context.Context, entityID string) (map[string]interface{}, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if id, _ := h.state["entity_id"].(string); id != entityID {
		return nil, model.ErrUnknownEntity
	}
	return h.state, nil
}

func (h *offlineHA) GetRawStates(ctx context.Context) ([]map[string]interface{}, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return []map[string]interface{}{h.state}, nil
}

func (h *offlineHA) CallService(ctx context.Context, domain, svc string, data map[string]interface{}) error {
	if domain == "" || svc == "" {
		return model.ErrInvalidConfig
	}
	h.rec.write(replayOutput{Type: "call", Service: domain + "." + svc, Data: data})
	return nil
}

func (h *offlineHA) Configure(url, token string) {}

func (h *offlineHA) IsConfigured() bool { return true }
