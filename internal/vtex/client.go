package vtex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/hidramais/vtex-alerts/internal/config"
	"github.com/hidramais/vtex-alerts/internal/domain"
	"github.com/hidramais/vtex-alerts/pkg/errors"
)

type Client struct {
	baseURL    string
	appKey     string
	appToken   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new VTEX OMS client. A client built from an incomplete
// config is valid but disabled: lookups return no data without a network call.
func NewClient(cfg config.VTEXConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		appKey:   cfg.AppKey,
		appToken: cfg.AppToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Enabled reports whether the client has a base URL and both credentials
func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.appKey != "" && c.appToken != ""
}

// Lookup is the result of a best-effort order fetch. Order is nil when
// VTEX is not configured or the request failed.
type Lookup struct {
	Order       *domain.OrderRecord
	TrackingURL string
}

// FetchOrder looks up an order for enrichment. Failures are logged and
// reported as an empty Lookup, never as an error.
func (c *Client) FetchOrder(ctx context.Context, orderNumber string) Lookup {
	if !c.Enabled() {
		c.logger.Info("VTEX not configured, skipping order lookup",
			zap.Bool("base_url", c.baseURL != ""),
			zap.Bool("app_key", c.appKey != ""),
			zap.Bool("app_token", c.appToken != ""),
		)
		return Lookup{}
	}

	order, err := c.GetOrder(ctx, orderNumber)
	if err != nil {
		c.logger.Warn("VTEX order lookup failed",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return Lookup{}
	}

	return Lookup{Order: order, TrackingURL: order.TrackingURL()}
}

// GetOrder fetches a single order from /api/oms/pvt/orders/{orderId}
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.OrderRecord, error) {
	if !c.Enabled() {
		return nil, errors.NotConfigured("VTEX_BASE_URL/VTEX_APP_KEY/VTEX_APP_TOKEN")
	}

	endpoint := fmt.Sprintf("%s/api/oms/pvt/orders/%s", c.baseURL, url.PathEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-VTEX-API-AppKey", c.appKey)
	req.Header.Set("X-VTEX-API-AppToken", c.appToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &errors.ErrNotFound{Resource: "order", ID: orderID}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.ErrRemote{Service: "vtex", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var order domain.OrderRecord
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	order.Raw = body

	return &order, nil
}
