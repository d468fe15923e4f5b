package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/velozshop/veloz/internal/domain/order"
)

type OrderStore struct {
	mu     sync.RWMutex
	seq    int64
	orders map[int64]*order.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[int64]*order.Order),
	}
}

func (s *OrderStore) Insert(ctx context.Context, o *order.Order) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	o.ID = s.seq
	s.orders[o.ID] = o.Clone()
	return nil
}

func (s *OrderStore) Get(ctx context.Context, id int64) (*order.Order, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o.Clone(), nil
}

func (s *OrderStore) List(ctx context.Context) ([]*order.Order, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *OrderStore) Update(ctx context.Context, o *order.Order) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.ID]; !ok {
		return order.ErrNotFound
	}
	s.orders[o.ID] = o.Clone()
	return nil
}
