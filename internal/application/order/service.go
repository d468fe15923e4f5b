package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/velozshop/veloz/internal/domain/order"
	"github.com/velozshop/veloz/internal/domain/payment"
	"github.com/velozshop/veloz/internal/pkg/logging"
)

// Service orchestrates order creation across the inventory and payment
// services: reserve stock line by line, persist the order, then charge.
//
// Reservations are intentionally sequential and are NOT rolled back when a
// later line fails; stock reserved for earlier lines stays reserved. That
// inconsistency is accepted and reconciled out-of-band.
type Service struct {
	repo      domain.Repository
	inventory InventoryClient
	payments  PaymentClient
}

func NewService(repo domain.Repository, inventory InventoryClient, payments PaymentClient) *Service {
	return &Service{
		repo:      repo,
		inventory: inventory,
		payments:  payments,
	}
}

type LineInput struct {
	ItemID   int64
	Quantity int
}

type CreateOrderInput struct {
	Customer string
	Items    []LineInput
}

// CreateOrderResult carries the final order plus whichever payment outcome was
// reached. PaymentErr is set when the payment channel was unreachable; the
// order then exists durably in payment_error status.
type CreateOrderResult struct {
	Order      *domain.Order
	Payment    *payment.Payment
	PaymentErr error
}

func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))
	logger.Info("create_order_start",
		zap.String("customer", input.Customer),
		zap.Int("lines", len(input.Items)),
	)

	if input.Customer == "" {
		return nil, domain.ErrCustomerRequired
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrItemsRequired
	}

	lines := make([]domain.Line, 0, len(input.Items))
	for _, in := range input.Items {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = 1
		}

		item, err := s.inventory.GetItem(ctx, in.ItemID)
		if err != nil {
			logger.Warn("item_lookup_failed", zap.Int64("item_id", in.ItemID), zap.Error(err))
			return nil, fmt.Errorf("item %d: %w", in.ItemID, err)
		}

		if _, err := s.inventory.Reserve(ctx, in.ItemID, quantity); err != nil {
			logger.Warn("reserve_failed", zap.Int64("item_id", in.ItemID), zap.Error(err))
			return nil, fmt.Errorf("reserve item %d: %w", in.ItemID, err)
		}

		// Snapshot name and price as they were at reservation time.
		lines = append(lines, domain.Line{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  quantity,
			UnitPrice: item.Price,
		})
	}

	entity, err := domain.New(input.Customer, lines)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("order_insert_failed", zap.Error(err))
		return nil, fmt.Errorf("order: insert: %w", err)
	}

	pay, err := s.payments.Charge(ctx, entity.ID, entity.Total)
	if err != nil {
		_ = entity.MarkPaymentError()
		if updateErr := s.repo.Update(ctx, entity); updateErr != nil {
			logger.Error("order_update_failed", zap.Int64("order_id", entity.ID), zap.Error(updateErr))
			return nil, fmt.Errorf("order: update: %w", updateErr)
		}
		logger.Warn("payment_channel_failed", zap.Int64("order_id", entity.ID), zap.Error(err))
		return &CreateOrderResult{Order: entity, PaymentErr: err}, nil
	}

	if pay.Status == payment.StatusApproved {
		_ = entity.MarkPaid()
	} else {
		_ = entity.MarkDeclined()
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		logger.Error("order_update_failed", zap.Int64("order_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("order: update: %w", err)
	}

	logger.Info("create_order_done",
		zap.Int64("order_id", entity.ID),
		zap.String("status", string(entity.Status)),
		zap.Float64("total", entity.Total),
	)
	return &CreateOrderResult{Order: entity, Payment: pay}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}
