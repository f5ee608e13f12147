package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"slider-button/internal/domain/gesture"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the process configuration. Card layouts live in the card file.
type Config struct {
	Env      string `envconfig:"ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	HassURL    string `envconfig:"HASS_URL"`
	HassToken  string `envconfig:"HASS_TOKEN"`
	CardsPath  string `envconfig:"CARDS_PATH" default:"cards.yaml"`

	StatePollInterval time.Duration `envconfig:"STATE_POLL_INTERVAL" default:"2s"`

	// Gesture timings and distances, in pixels.
	HoldTime            time.Duration `envconfig:"HOLD_TIME" default:"500ms"`
	MaxClickTime        time.Duration `envconfig:"MAX_CLICK_TIME" default:"250ms"`
	DoubleTapWindow     time.Duration `envconfig:"DOUBLE_TAP_WINDOW" default:"250ms"`
	HoldCancelDistance  float64       `envconfig:"HOLD_CANCEL_DISTANCE" default:"10"`
	DragConfirmDistance float64       `envconfig:"DRAG_CONFIRM_DISTANCE" default:"15"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Error loading .env file", "error", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.StatePollInterval <= 0 {
		errs = append(errs, errors.New("STATE_POLL_INTERVAL must be positive"))
	}
	if c.HoldTime <= 0 || c.MaxClickTime <= 0 || c.DoubleTapWindow <= 0 {
		errs = append(errs, errors.New("gesture timings must be positive"))
	}
	if c.HoldCancelDistance <= 0 || c.DragConfirmDistance <= 0 {
		errs = append(errs, errors.New("gesture distances must be positive"))
	}
	if c.DragConfirmDistance < c.HoldCancelDistance {
		errs = append(errs, errors.New("DRAG_CONFIRM_DISTANCE must not be below HOLD_CANCEL_DISTANCE"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// HassConfigured reports whether both Home Assistant settings are present.
func (c *Config) HassConfigured() bool {
	return c.HassURL != "" && c.HassToken != ""
}

// Gesture returns the classifier timings. Enable flags are left to the widget.
func (c *Config) Gesture() gesture.Config {
	g := gesture.DefaultConfig()
	g.HoldTime = c.HoldTime
	g.MaxClickTime = c.MaxClickTime
	g.DoubleTapWindow = c.DoubleTapWindow
	g.HoldCancelDistance = c.HoldCancelDistance
	g.DragConfirmDistance = c.DragConfirmDistance
	return g
}
