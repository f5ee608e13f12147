package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"slider-button/internal/domain/model"
)

var ErrNotConfigured = errors.New("home assistant not configured")

const statesCacheTTL = 2 * time.Second

type Client struct {
	url        string
	token      string
	httpClient *http.Client
	mu         sync.RWMutex

	cacheStates []map[string]interface{}
	cacheTime   time.Time
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Configure(url, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = strings.TrimSuffix(url, "/")
	c.token = token
	c.cacheTime = time.Time{}
}

func (c *Client) IsConfigured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.url != "" && c.token != ""
}

func (c *Client) credentials() (string, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.url == "" || c.token == "" {
		return "", "", ErrNotConfigured
	}
	return c.url, c.token, nil
}

// GetRawStates returns every state object. Results are shared for a short
// while so many widgets polling at once cost one request.
func (c *Client) GetRawStates(ctx context.Context) ([]map[string]interface{}, error) {
	c.mu.RLock()
	if time.Since(c.cacheTime) < statesCacheTTL {
		res := c.cacheStates
		c.mu.RUnlock()
		return res, nil
	}
	c.mu.RUnlock()

	var states []map[string]interface{}
	if err := c.get(ctx, "/api/states", &states); err != nil {
		return nil, err
	}

	// Strip large attributes to save RAM
	for _, s := range states {
		if attr, ok := s["attributes"].(map[string]interface{}); ok {
			delete(attr, "source_list")
			delete(attr, "sound_mode_list")
			delete(attr, "effect_list")
		}
	}

	c.mu.Lock()
	c.cacheStates = states
	c.cacheTime = time.Now()
	c.mu.Unlock()

	return states, nil
}

// GetRawState fetches one entity, bypassing the cache.
func (c *Client) GetRawState(ctx context.Context, entityID string) (map[string]interface{}, error) {
	var state map[string]interface{}
	if err := c.get(ctx, "/api/states/"+url.PathEscape(entityID), &state); err != nil {
		return nil, fmt.Errorf("get %s: %w", entityID, err)
	}
	return state, nil
}

// CallService posts to /api/services/<domain>/<service> and drops the state cache
// so the next poll sees the result.
func (c *Client) CallService(ctx context.Context, domain, service string, data map[string]interface{}) error {
	urlBase, token, err := c.credentials()
	if err != nil {
		return err
	}
	if domain == "" || service == "" {
		return fmt.Errorf("invalid service %q.%q: %w", domain, service, model.ErrInvalidConfig)
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/api/services/%s/%s", urlBase, domain, service)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HA API error: %d", resp.StatusCode)
	}

	c.mu.Lock()
	c.cacheTime = time.Time{}
	c.mu.Unlock()
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	urlBase, token, err := c.credentials()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.ErrUnknownEntity
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("HA API error: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
