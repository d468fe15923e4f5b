package order

import "context"

type Repository interface {
	// Insert persists a new order and assigns its ID.
	Insert(ctx context.Context, order *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	Update(ctx context.Context, order *Order) error
}
