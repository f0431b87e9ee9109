package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"accessboard/backend/libs/presence"
)

// PresenceClient pushes freshly imported events to the presence service so
// its live activity feed updates without polling.
type PresenceClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewPresenceClient builds HTTP client wrapper. An empty baseURL disables
// notifications entirely.
func NewPresenceClient(baseURL string, logger *zap.Logger) *PresenceClient {
	return &PresenceClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// NotifyEvents delivers the events best-effort; a failed notification never
// fails the import.
func (c *PresenceClient) NotifyEvents(ctx context.Context, events []presence.AccessEvent) error {
	if c.baseURL == "" {
		c.logger.Debug("presence client disabled, skipping notification")
		return nil
	}
	if len(events) == 0 {
		return nil
	}

	data, err := json.Marshal(map[string]interface{}{"events": events})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", c.baseURL, "/internal/events/notify"), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("presence client request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Warn("presence client returned non-success", zap.Int("status", resp.StatusCode))
	}
	return nil
}
