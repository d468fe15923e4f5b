package order

import (
	"context"
	"errors"

	"github.com/velozshop/veloz/internal/domain/inventory"
	"github.com/velozshop/veloz/internal/domain/payment"
)

var (
	// ErrInventoryUnavailable means the inventory service could not be
	// reached (connection failure or timeout, treated identically).
	ErrInventoryUnavailable = errors.New("order: inventory service unavailable")
	// ErrPaymentUnavailable means the payment service could not be reached.
	// It is surfaced after the order row already exists.
	ErrPaymentUnavailable = errors.New("order: payment service unavailable")
)

// InventoryClient is the orchestrator's view of the inventory service.
// Implementations map 404 to inventory.ErrNotFound, 409 to
// *inventory.InsufficientStockError and transport failures to
// ErrInventoryUnavailable.
type InventoryClient interface {
	GetItem(ctx context.Context, id int64) (*inventory.Item, error)
	Reserve(ctx context.Context, id int64, quantity int) (*inventory.Item, error)
}

// PaymentClient is the orchestrator's view of the payment service. A declined
// charge is returned as a payment with StatusDeclined, not as an error;
// transport failures map to ErrPaymentUnavailable.
type PaymentClient interface {
	Charge(ctx context.Context, orderID int64, amount float64) (*payment.Payment, error)
}
