package inventory

import "context"

type Repository interface {
	Insert(ctx context.Context, item *Item) error
	Get(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	// Reserve atomically checks and decrements stock for the item. Two
	// concurrent reservations must never both succeed when only one of them
	// fits the available quantity.
	Reserve(ctx context.Context, id int64, quantity int) (*Item, error)
}
