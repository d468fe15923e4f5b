package inventory

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("inventory: item not found")
	ErrNameRequired    = errors.New("inventory: name is required")
	ErrInvalidQuantity = errors.New("inventory: quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("inventory: price must be zero or greater")
)

// InsufficientStockError reports a failed reservation together with the
// quantity that was available at the time of the check.
type InsufficientStockError struct {
	ItemID    int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("inventory: insufficient stock for item %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

func New(name, description string, quantity int, price float64) (*Item, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	return &Item{
		Name:        name,
		Description: description,
		Quantity:    quantity,
		Price:       price,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Reserve decrements the available quantity. The check and the decrement must
// be executed under the same lock by the caller; Reserve itself never leaves
// the item partially mutated.
func (i *Item) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > i.Quantity {
		return &InsufficientStockError{ItemID: i.ID, Requested: quantity, Available: i.Quantity}
	}
	i.Quantity -= quantity
	return nil
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}
