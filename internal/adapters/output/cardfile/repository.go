package cardfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
	"slider-button/internal/domain/model"
)

var ErrCardNotFound = errors.New("card not found")

// file is the on-disk layout. JSON documents decode as well.
type file struct {
	Cards []model.CardConfig `yaml:"cards"`
}

// Repository reads card configurations from a YAML file. The file is read on
// every call so edits apply to the next connection without a restart.
type Repository struct {
	path string
	mu   sync.RWMutex
}

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

func (r *Repository) Get(ctx context.Context, id string) (*model.CardConfig, error) {
	cards, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", id, ErrCardNotFound)
}

// List returns every card in file order. A missing file holds no cards.
func (r *Repository) List(ctx context.Context) ([]model.CardConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(expandPath(r.path))
	if err != nil {
		if os.IsNotExist(err) {
			return []model.CardConfig{}, nil
		}
		return nil, fmt.Errorf("read card file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a card file. Unknown fields are rejected to
// catch typos.
func Parse(data []byte) ([]model.CardConfig, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.CardConfig{}, nil
		}
		return nil, fmt.Errorf("decode card yaml: %w", err)
	}

	seen := make(map[string]bool, len(f.Cards))
	for i, c := range f.Cards {
		if c.ID == "" {
			return nil, fmt.Errorf("card %d: missing id: %w", i, model.ErrInvalidConfig)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("card %q: duplicate id: %w", c.ID, model.ErrInvalidConfig)
		}
		seen[c.ID] = true
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("card %q: entity %q: %w", c.ID, c.Entity, err)
		}
	}
	if f.Cards == nil {
		f.Cards = []model.CardConfig{}
	}
	return f.Cards, nil
}

// expandPath expands a leading "~" using $HOME.
func expandPath(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
