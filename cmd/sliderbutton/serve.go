package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"slider-button/internal/adapters/input/ws"
	"slider-button/internal/adapters/output/cardfile"
	"slider-button/internal/adapters/output/homeassistant"
	"slider-button/internal/config"
	"slider-button/internal/domain/service"
	"slider-button/internal/logger"
	"slider-button/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Setup(cfg)

	haClient := homeassistant.NewClient()
	if cfg.HassConfigured() {
		haClient.Configure(cfg.HassURL, cfg.HassToken)
	} else {
		log.Warn("HASS_URL or HASS_TOKEN not set, every widget will show unavailable")
	}

	cards := cardfile.NewRepository(cfg.CardsPath)
	list, err := cards.List(context.Background())
	if err != nil {
		return err
	}
	log.Info("cards loaded", "path", cfg.CardsPath, "count", len(list))

	recorder := metrics.NewRecorder()
	entities := service.NewEntityService(haClient, recorder, log)
	server := ws.NewServer(cards, entities, haClient, recorder, log, ws.ServerConfig{
		Gesture:      cfg.Gesture(),
		PollInterval: cfg.StatePollInterval,
	})

	mux := http.NewServeMux()
	server.Register(mux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		// Widget sessions end with this context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server exited with error", "error", err)
		return err
	}
	log.Info("server shut down gracefully")
	return nil
}
