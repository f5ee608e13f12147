package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"slider-button/internal/adapters/output/cardfile"
	"slider-button/internal/adapters/output/homeassistant"
	"slider-button/internal/config"
	"slider-button/internal/domain/gesture"
	"slider-button/internal/domain/service"
	"slider-button/internal/logger"
)

type InspectCmd struct {
	Cards string `flag:"" default:"cards.yaml" env:"CARDS_PATH" help:"Card file"`
	Card  string `arg:"" help:"Card id"`
}

func (c *InspectCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Setup(cfg)
	if !cfg.HassConfigured() {
		return errors.New("HASS_URL and HASS_TOKEN must be set")
	}

	card, err := cardfile.NewRepository(c.Cards).Get(context.Background(), c.Card)
	if err != nil {
		return err
	}

	haClient := homeassistant.NewClient()
	haClient.Configure(cfg.HassURL, cfg.HassToken)
	entities := service.NewEntityService(haClient, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	e, err := entities.Lookup(ctx, card.Ref())
	if err != nil {
		return fmt.Errorf("lookup %s: %w", card.Entity, err)
	}

	slider, err := service.NewSlider(service.Options{
		ID:        card.ID,
		Card:      *card,
		Gesture:   cfg.Gesture(),
		Scheduler: gesture.NewManualScheduler(time.Now()),
		Sink:      entities,
		Actions:   service.NewActionService(entities, haClient, nil, log),
		Logger:    log,
	})
	if err != nil {
		return err
	}
	slider.UpdateState(e)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(slider.Frame())
}
