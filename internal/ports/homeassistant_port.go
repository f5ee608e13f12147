package ports

import (
	"context"
)

// HomeAssistantPort is the REST surface of a Home Assistant instance.
type HomeAssistantPort interface {
	GetRawState(ctx context.Context, entityID string) (map[string]interface{}, error)
	GetRawStates(ctx context.Context) ([]map[string]interface{}, error)
	CallService(ctx context.Context, domain, service string, data map[string]interface{}) error
	Configure(url, token string)
	IsConfigured() bool
}
