// Package httpclient implements the orchestrator's outbound clients. Every
// request carries the W3C trace context so cross-service hops correlate.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	apporder "github.com/velozshop/veloz/internal/application/order"
	"github.com/velozshop/veloz/internal/domain/inventory"
)

const inventoryTimeout = 5 * time.Second

type InventoryClient struct {
	baseURL string
	client  *http.Client
}

func NewInventoryClient(baseURL string) *InventoryClient {
	return &InventoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: inventoryTimeout},
	}
}

func (c *InventoryClient) GetItem(ctx context.Context, id int64) (*inventory.Item, error) {
	url := fmt.Sprintf("%s/items/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	injectTrace(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		// Timeouts and connection failures are indistinguishable to the
		// workflow; both abort the order.
		return nil, fmt.Errorf("%w: %s", apporder.ErrInventoryUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var item inventory.Item
		if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
			return nil, fmt.Errorf("inventory: decode item: %w", err)
		}
		return &item, nil
	case http.StatusNotFound:
		return nil, inventory.ErrNotFound
	default:
		return nil, fmt.Errorf("inventory: unexpected status %d", resp.StatusCode)
	}
}

type reserveRequest struct {
	Quantity int `json:"quantity"`
}

type reserveResponse struct {
	Message string          `json:"message"`
	Item    *inventory.Item `json:"item"`
}

type conflictResponse struct {
	Error     string `json:"error"`
	Available int    `json:"available"`
}

func (c *InventoryClient) Reserve(ctx context.Context, id int64, quantity int) (*inventory.Item, error) {
	body, err := json.Marshal(reserveRequest{Quantity: quantity})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/items/%d/reserve", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	injectTrace(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apporder.ErrInventoryUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out reserveResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("inventory: decode reserve response: %w", err)
		}
		return out.Item, nil
	case http.StatusNotFound:
		return nil, inventory.ErrNotFound
	case http.StatusConflict:
		var out conflictResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("inventory: decode conflict response: %w", err)
		}
		return nil, &inventory.InsufficientStockError{
			ItemID:    id,
			Requested: quantity,
			Available: out.Available,
		}
	default:
		return nil, fmt.Errorf("inventory: unexpected status %d", resp.StatusCode)
	}
}

func injectTrace(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
