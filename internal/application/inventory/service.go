package inventory

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/velozshop/veloz/internal/domain/inventory"
	"github.com/velozshop/veloz/internal/pkg/logging"
)

type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

type CreateItemInput struct {
	Name        string
	Description string
	Quantity    int
	Price       float64
}

func (s *Service) Create(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	item, err := domain.New(input.Name, input.Description, input.Quantity, input.Price)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.List(ctx)
}

// Reserve atomically decrements stock for the item. The repository serializes
// the check-and-decrement per store, so concurrent calls never over-commit.
func (s *Service) Reserve(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "inventory_service"))

	item, err := s.repo.Reserve(ctx, id, quantity)
	if err != nil {
		logger.Warn("reserve_failed", zap.Int64("item_id", id), zap.Int("quantity", quantity), zap.Error(err))
		return nil, err
	}

	logger.Info("stock_reserved",
		zap.Int64("item_id", id),
		zap.Int("quantity", quantity),
		zap.Int("remaining", item.Quantity),
	)
	return item, nil
}

// WriteOff confirms a reservation for fulfillment. Stock was already
// decremented at reservation time, so this is a lookup-and-acknowledge.
func (s *Service) WriteOff(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.Get(ctx, id)
}
