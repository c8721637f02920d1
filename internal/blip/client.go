package blip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/pkg/errors"
)

type Client struct {
	endpoint   string
	auth       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Blip campaign client
func NewClient(cfg config.BlipConfig, logger *zap.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		auth:     cfg.Auth,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Response is what Blip answered to a dispatched campaign
type Response struct {
	StatusCode int    `json:"status"`
	Body       string `json:"body"`
}

// Send posts the payload to Blip. A missing endpoint or auth header and any
// non-2xx answer are errors.
func (c *Client) Send(ctx context.Context, payload *Payload) (*Response, error) {
	if c.endpoint == "" {
		return nil, errors.NotConfigured("BLIP_ENDPOINT")
	}
	if c.auth == "" {
		return nil, errors.NotConfigured("BLIP_AUTH")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	c.logger.Info("Sending payload to Blip",
		zap.String("endpoint", c.endpoint),
		zap.String("campaign", payload.Resource.Campaign.Name),
	)
	c.logger.Debug("Blip payload", zap.ByteString("data", jsonData))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.ErrRemote{Service: "blip", StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.Info("Blip accepted campaign", zap.Int("status", resp.StatusCode))
	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
