package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/velozshop/veloz/internal/domain/payment"
	"github.com/velozshop/veloz/internal/pkg/logging"
)

// Decider makes the approve/decline call for a charge. It is injected so
// tests can force either outcome deterministically.
type Decider interface {
	Approve(ctx context.Context, orderID int64, amount float64) bool
}

type randomDecider struct {
	mu          sync.Mutex
	random      *rand.Rand
	approveRate float64
}

// NewRandomDecider approves charges with the given probability.
func NewRandomDecider(approveRate float64) Decider {
	return &randomDecider{
		random:      rand.New(rand.NewSource(time.Now().UnixNano())),
		approveRate: approveRate,
	}
}

func (d *randomDecider) Approve(ctx context.Context, orderID int64, amount float64) bool {
	_ = ctx
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.random.Float64() < d.approveRate
}

type Service struct {
	repo    domain.Repository
	decider Decider
}

func NewService(repo domain.Repository, decider Decider) *Service {
	return &Service{
		repo:    repo,
		decider: decider,
	}
}

type ChargeInput struct {
	OrderID int64
	Amount  float64
	Method  string
}

// Charge decides the outcome and persists a payment record either way. A
// declined charge is a processed outcome, not an error.
func (s *Service) Charge(ctx context.Context, input ChargeInput) (*domain.Payment, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))
	logger.Info("charge_start",
		zap.Int64("order_id", input.OrderID),
		zap.Float64("amount", input.Amount),
	)

	status := domain.StatusDeclined
	if input.OrderID > 0 && input.Amount > 0 && s.decider.Approve(ctx, input.OrderID, input.Amount) {
		status = domain.StatusApproved
	}

	p, err := domain.New(input.OrderID, input.Amount, input.Method, status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		logger.Error("payment_insert_failed", zap.Int64("order_id", input.OrderID), zap.Error(err))
		return nil, fmt.Errorf("payment: insert: %w", err)
	}

	logger.Info("charge_done",
		zap.Int64("payment_id", p.ID),
		zap.Int64("order_id", p.OrderID),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Payment, error) {
	return s.repo.List(ctx)
}
