package payment

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/velozshop/veloz/internal/domain/payment"
	"github.com/velozshop/veloz/internal/infrastructure/boltstore"
)

type fixedDecider struct{ approve bool }

func (d fixedDecider) Approve(context.Context, int64, float64) bool { return d.approve }

func newTestService(t *testing.T, approve bool) (*Service, *boltstore.PaymentStore) {
	t.Helper()
	store, err := boltstore.Open(filepath.Join(t.TempDir(), "payments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, fixedDecider{approve: approve}), store
}

func TestChargeApproved(t *testing.T) {
	svc, store := newTestService(t, true)

	p, err := svc.Charge(context.Background(), ChargeInput{OrderID: 1, Amount: 20.0})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, p.Status)
	assert.Equal(t, domain.DefaultMethod, p.Method)
	assert.NotZero(t, p.ID)

	stored, err := store.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
}

func TestChargeDeclinedIsPersisted(t *testing.T) {
	svc, store := newTestService(t, false)

	p, err := svc.Charge(context.Background(), ChargeInput{OrderID: 1, Amount: 20.0, Method: "pix"})
	require.NoError(t, err)

	// A decline is a processed outcome and leaves a record like any approval.
	assert.Equal(t, domain.StatusDeclined, p.Status)
	assert.Equal(t, "pix", p.Method)

	payments, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestChargeValidation(t *testing.T) {
	svc, store := newTestService(t, true)

	_, err := svc.Charge(context.Background(), ChargeInput{Amount: 20.0})
	assert.ErrorIs(t, err, domain.ErrOrderRequired)

	_, err = svc.Charge(context.Background(), ChargeInput{OrderID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Charge(context.Background(), ChargeInput{OrderID: 1, Amount: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	payments, listErr := store.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, payments, "rejected charges must not be persisted")
}

func TestRandomDeciderRespectsRateBounds(t *testing.T) {
	always := NewRandomDecider(1.0)
	never := NewRandomDecider(0.0)

	for i := 0; i < 100; i++ {
		assert.True(t, always.Approve(context.Background(), 1, 10.0))
		assert.False(t, never.Approve(context.Background(), 1, 10.0))
	}
}
