package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrCustomerRequired  = errors.New("order: customer is required")
	ErrItemsRequired     = errors.New("order: items are required")
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

type Status string

const (
	// StatusStockReserved is the only non-terminal status: all line
	// reservations succeeded and the payment outcome is still unknown.
	StatusStockReserved Status = "stock_reserved"
	StatusPaid          Status = "paid"
	StatusDeclined      Status = "payment_declined"
	StatusPaymentError  Status = "payment_error"
)

// Line is an immutable snapshot of an inventory item taken at reservation
// time. Later price or name changes in inventory never affect it.
type Line struct {
	ItemID    int64   `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Order struct {
	ID        int64     `json:"id"`
	Customer  string    `json:"customer"`
	Status    Status    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	Lines     []Line    `json:"items"`
}

// New builds an order in stock_reserved status. The total is fixed from the
// line snapshots and never recomputed.
func New(customer string, lines []Line) (*Order, error) {
	if customer == "" {
		return nil, ErrCustomerRequired
	}
	if len(lines) == 0 {
		return nil, ErrItemsRequired
	}

	total := 0.0
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}

	return &Order{
		Customer:  customer,
		Status:    StatusStockReserved,
		Total:     total,
		CreatedAt: time.Now().UTC(),
		Lines:     lines,
	}, nil
}

func (o *Order) MarkPaid() error { return o.transition(StatusPaid) }

func (o *Order) MarkDeclined() error { return o.transition(StatusDeclined) }

func (o *Order) MarkPaymentError() error { return o.transition(StatusPaymentError) }

// transition enforces the single legal edge set: stock_reserved may move to
// any terminal status, terminal statuses never move again.
func (o *Order) transition(to Status) error {
	if o.Status != StatusStockReserved {
		return ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func (o *Order) Terminal() bool {
	return o.Status != StatusStockReserved
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = make([]Line, len(o.Lines))
	copy(clone.Lines, o.Lines)
	return &clone
}
