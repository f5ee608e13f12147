package ports

import (
	"context"

	"slider-button/internal/domain/model"
)

// CardRepository serves card configurations. Cards are read-only at runtime.
type CardRepository interface {
	Get(ctx context.Context, id string) (*model.CardConfig, error)
	List(ctx context.Context) ([]model.CardConfig, error)
}
