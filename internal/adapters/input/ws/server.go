package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"slider-button/internal/adapters/output/cardfile"
	"slider-button/internal/domain/gesture"
	"slider-button/internal/domain/service"
	"slider-button/internal/metrics"
	"slider-button/internal/ports"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultSendBuf      = 64
)

// Entities reads entity state and writes slider values.
type Entities interface {
	ports.StateProvider
	ports.CommandSink
}

type ServerConfig struct {
	Gesture      gesture.Config
	PollInterval time.Duration
	// SendBuf is the per-connection outbound queue size.
	SendBuf int
}

// Server hosts one slider widget per websocket connection.
type Server struct {
	cards    ports.CardRepository
	entities Entities
	haPort   ports.HomeAssistantPort
	metrics  ports.MetricsRecorder
	cfg      ServerConfig
	logger   *slog.Logger
}

func NewServer(cards ports.CardRepository, entities Entities, haPort ports.HomeAssistantPort, recorder ports.MetricsRecorder, logger *slog.Logger, cfg ServerConfig) *Server {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.SendBuf <= 0 {
		cfg.SendBuf = defaultSendBuf
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cards:    cards,
		entities: entities,
		haPort:   haPort,
		metrics:  recorder,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register adds the widget, card listing, metrics and health routes.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/cards", s.handleCards)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	cardID := r.URL.Query().Get("card")
	if cardID == "" {
		http.Error(w, "missing card parameter", http.StatusBadRequest)
		return
	}
	card, err := s.cards.Get(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, cardfile.ErrCardNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("Error loading card", "card", cardID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("widget", id, "card", cardID, "remote_addr", r.RemoteAddr)
	runner := service.NewRunner(0)
	sess := &session{
		id:       id,
		conn:     conn,
		send:     make(chan []byte, s.cfg.SendBuf),
		refresh:  make(chan struct{}, 1),
		runner:   runner,
		entities: s.entities,
		ref:      card.Ref(),
		poll:     s.cfg.PollInterval,
		logger:   logger,
	}

	slider, err := service.NewSlider(service.Options{
		ID:        id,
		Card:      *card,
		Gesture:   s.cfg.Gesture,
		Scheduler: runner,
		Sink:      s.entities,
		Actions:   service.NewActionService(s.entities, s.haPort, sess, logger),
		View:      sess,
		Metrics:   s.metrics,
		Logger:    logger,
		OnCommand: sess.requestRefresh,
	})
	if err != nil {
		logger.Error("Error creating widget", "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "invalid card"), time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	sess.slider = slider

	metrics.ActiveWidgets.Inc()
	defer metrics.ActiveWidgets.Dec()
	logger.Info("widget connected", "entity", card.Entity)

	// The handler blocks for the whole session, so the request context only
	// ends with the server's base context.
	if err := sess.run(r.Context()); err != nil {
		logger.Warn("widget session ended with error", "error", err)
	}
	logger.Info("widget disconnected")
}

type cardSummary struct {
	ID     string `json:"id"`
	Entity string `json:"entity"`
	Name   string `json:"name,omitempty"`
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.cards.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]cardSummary, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardSummary{ID: c.ID, Entity: c.Entity, Name: c.Name})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
