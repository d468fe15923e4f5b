package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/velozshop/veloz/internal/domain/inventory"
)

// ItemStore is a mutex-guarded in-memory inventory store. The write lock is
// held across the check-and-decrement in Reserve, which is what keeps
// concurrent reservations from over-committing stock.
type ItemStore struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*inventory.Item
}

func NewItemStore() *ItemStore {
	return &ItemStore{
		items: make(map[int64]*inventory.Item),
	}
}

func (s *ItemStore) Insert(ctx context.Context, item *inventory.Item) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	item.ID = s.seq
	s.items[item.ID] = item.Clone()
	return nil
}

func (s *ItemStore) Get(ctx context.Context, id int64) (*inventory.Item, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, inventory.ErrNotFound
	}
	return item.Clone(), nil
}

func (s *ItemStore) List(ctx context.Context) ([]*inventory.Item, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*inventory.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ItemStore) Reserve(ctx context.Context, id int64, quantity int) (*inventory.Item, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, inventory.ErrNotFound
	}
	if err := item.Reserve(quantity); err != nil {
		return nil, err
	}
	return item.Clone(), nil
}
