package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/velozshop/veloz/internal/domain/inventory"
)

func newItem(t *testing.T, s *ItemStore, name string, quantity int, price float64) *inventory.Item {
	t.Helper()
	item, err := inventory.New(name, "", quantity, price)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	if err := s.Insert(context.Background(), item); err != nil {
		t.Fatalf("insert item: %v", err)
	}
	return item
}

func TestItemStoreInsertAssignsSequentialIDs(t *testing.T) {
	s := NewItemStore()
	a := newItem(t, s, "keyboard", 5, 10.0)
	b := newItem(t, s, "mouse", 3, 5.0)

	if a.ID != 1 || b.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}
}

func TestItemStoreGetNotFound(t *testing.T) {
	s := NewItemStore()
	if _, err := s.Get(context.Background(), 42); !errors.Is(err, inventory.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestItemStoreGetReturnsClone(t *testing.T) {
	s := NewItemStore()
	item := newItem(t, s, "keyboard", 5, 10.0)

	got, err := s.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.Quantity = 0

	again, err := s.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Quantity != 5 {
		t.Error("store state leaked through returned pointer")
	}
}

func TestItemStoreReserve(t *testing.T) {
	s := NewItemStore()
	item := newItem(t, s, "keyboard", 5, 10.0)

	updated, err := s.Reserve(context.Background(), item.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 3 {
		t.Errorf("expected remaining 3, got %d", updated.Quantity)
	}

	_, err = s.Reserve(context.Background(), item.ID, 4)
	var stockErr *inventory.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 3 {
		t.Errorf("expected available 3, got %d", stockErr.Available)
	}
}

// N concurrent single-unit reservations against stock S must produce exactly
// min(N,S) successes and leave final stock at S-min(N,S).
func TestItemStoreReserveConcurrent(t *testing.T) {
	const stock = 5
	const callers = 20

	s := NewItemStore()
	item := newItem(t, s, "keyboard", stock, 10.0)

	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Reserve(context.Background(), item.ID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var stockErr *inventory.InsufficientStockError
			if !errors.As(err, &stockErr) {
				t.Fatalf("unexpected error: %v", err)
			}
			conflicts++
		}
	}

	if successes != stock {
		t.Errorf("expected %d successful reservations, got %d", stock, successes)
	}
	if conflicts != callers-stock {
		t.Errorf("expected %d conflicts, got %d", callers-stock, conflicts)
	}

	final, err := s.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Quantity != 0 {
		t.Errorf("expected final stock 0, got %d", final.Quantity)
	}
}
