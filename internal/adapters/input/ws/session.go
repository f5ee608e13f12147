package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/projection"
	"slider-button/internal/domain/service"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 20 * time.Second
	readLimit  = 4096
)

// session is one connection and the widget instance it owns. The slider is
// only touched from the runner's goroutine.
type session struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	refresh  chan struct{}
	runner   *service.Runner
	slider   *service.Slider
	entities Entities
	ref      model.EntityRef
	poll     time.Duration
	cancel   context.CancelFunc
	logger   *slog.Logger
}

func (s *session) run(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.runner.Run(gctx) })
	g.Go(func() error { return s.writePump(gctx) })
	g.Go(func() error { return s.readPump(gctx) })
	g.Go(func() error { return s.pollState(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		// unblocks readPump
		return s.conn.Close()
	})

	s.runner.Post(func() { s.Render(s.slider.Frame()) })

	err := g.Wait()
	// The runner has stopped; nothing else touches the slider now.
	s.slider.Close()
	if errors.Is(err, context.Canceled) || errors.Is(err, errClientGone) {
		return nil
	}
	return err
}

var errClientGone = errors.New("client disconnected")

func (s *session) readPump(ctx context.Context) error {
	s.conn.SetReadLimit(readLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if code, text, ok := closeStatus(err); ok {
				s.logger.Info("ws readPump exiting (close)", "code", code, "reason", text)
			} else {
				s.logger.Info("ws readPump exiting (read error)", "error", err)
			}
			return errClientGone
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			s.enqueue(errorMessage{Type: "error", Error: "invalid json"})
			continue
		}
		target, ev, err := msg.pointer(time.Now())
		if err != nil {
			s.logger.Debug("rejected message", "error", err)
			s.enqueue(errorMessage{Type: "error", Error: err.Error()})
			continue
		}
		s.runner.Post(func() { s.slider.HandlePointer(target, ev) })
	}
}

func (s *session) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return ctx.Err()

		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					s.logger.Info("ws writePump exiting (write error)", "error", err)
				}
				return errClientGone
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Info("ws writePump exiting (ping error)", "error", err)
				return errClientGone
			}
		}
	}
}

// pollState refreshes the entity every poll interval and whenever a command finished.
func (s *session) pollState(ctx context.Context) error {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	available := true
	for {
		e, err := s.entities.GetEntity(ctx, s.ref)
		if err != nil && ctx.Err() == nil && available {
			s.logger.Warn("Error reading entity state", "error", err)
		}
		available = err == nil
		if !s.runner.Post(func() { s.slider.UpdateState(e) }) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-s.refresh:
		}
	}
}

// requestRefresh asks for a state read without waiting for the next tick.
func (s *session) requestRefresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// enqueue never blocks. A client that cannot keep up is disconnected.
func (s *session) enqueue(v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("marshal ws message", "error", err)
		return
	}
	select {
	case s.send <- msg:
	default:
		s.logger.Warn("ws send queue full, disconnecting slow client")
		if s.cancel != nil {
			s.cancel()
		}
	}
}

func (s *session) Render(f projection.Frame) {
	s.enqueue(frameMessage{Type: "frame", WidgetID: s.id, Frame: f})
}

func (s *session) Capture(target model.Target, pointerID int) {
	s.enqueue(pointerMessage{Type: "capture", Target: target, PointerID: pointerID})
}

func (s *session) Release(target model.Target, pointerID int) {
	s.enqueue(pointerMessage{Type: "release", Target: target, PointerID: pointerID})
}

// HostAction forwards more-info, navigate and url actions to the host.
func (s *session) HostAction(ctx context.Context, action model.HostAction) error {
	s.enqueue(actionMessage{Type: "action", HostAction: action})
	return nil
}

// closeStatus extracts the websocket close code and text when possible.
func closeStatus(err error) (code int, text string, ok bool) {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Code, ce.Text, true
	}
	return 0, "", false
}
