package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apporder "github.com/velozshop/veloz/internal/application/order"
	"github.com/velozshop/veloz/internal/domain/payment"
)

// The payment hop gets a longer budget than inventory lookups; a timeout is
// still treated like a connection failure.
const paymentTimeout = 10 * time.Second

type PaymentClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentClient(baseURL string) *PaymentClient {
	return &PaymentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: paymentTimeout},
	}
}

type chargeRequest struct {
	OrderID int64   `json:"order_id"`
	Amount  float64 `json:"amount"`
}

func (c *PaymentClient) Charge(ctx context.Context, orderID int64, amount float64) (*payment.Payment, error) {
	body, err := json.Marshal(chargeRequest{OrderID: orderID, Amount: amount})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	injectTrace(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apporder.ErrPaymentUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusUnprocessableEntity:
		// 201 approved and 422 declined are both processed charges.
		var p payment.Payment
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, fmt.Errorf("payment: decode response: %w", err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("payment: unexpected status %d", resp.StatusCode)
	}
}
