package payment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrOrderRequired = errors.New("payment: order id is required")
	ErrInvalidAmount = errors.New("payment: amount must be greater than zero")
)

type Status string

const (
	// Both statuses are successful processing outcomes; a declined charge is
	// a business result, not a failure.
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

const DefaultMethod = "credit_card"

type Payment struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func New(orderID int64, amount float64, method string, status Status) (*Payment, error) {
	if orderID <= 0 {
		return nil, ErrOrderRequired
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if method == "" {
		method = DefaultMethod
	}
	return &Payment{
		OrderID:   orderID,
		Amount:    amount,
		Method:    method,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}, nil
}

type Repository interface {
	// Insert persists the payment and assigns its ID.
	Insert(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id int64) (*Payment, error)
	List(ctx context.Context) ([]*Payment, error)
}
