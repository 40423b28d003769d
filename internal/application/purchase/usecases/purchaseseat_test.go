package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/domain/pricing"
)

func newPurchaseFixture(seatCap int, priceCents int64) (*PurchaseSeatUseCase, *fakeStore, *fakeRefundTaskRepo, *fakeAvailabilityCache) {
	store := newFakeStore()
	store.addPool(1, 10, priceCents, seatCap)
	refunds := newFakeRefundTaskRepo()
	availability := &fakeAvailabilityCache{}
	uc := NewPurchaseSeatUseCase(
		&fakePoolRepo{store: store},
		&fakeGrantRepo{store: store},
		refunds,
		availability,
		testLogger(),
	)
	return uc, store, refunds, availability
}

func TestPurchaseSeat_Success(t *testing.T) {
	uc, store, _, availability := newPurchaseFixture(5, 2000)

	result, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           42,
		PoolSID:          "pool_000001",
		DurationDays:     15,
		PaymentReference: "pay_abc",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, int64(500), result.AmountCents)
	assert.Equal(t, 15, result.DurationDays)
	assert.Equal(t, "pay_abc", result.PaymentReference)
	assert.Equal(t, "account", result.AccessType)
	assert.Equal(t, "pool@example.com", result.AccessEmail)
	assert.True(t, result.IsActive)
	assert.Equal(t, 1, store.seatCount(1))
	assert.Equal(t, 1, availability.invalidations)
}

func TestPurchaseSeat_RecurringUsesFullCycle(t *testing.T) {
	uc, _, _, _ := newPurchaseFixture(5, 2000)

	result, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           42,
		PoolSID:          "pool_000001",
		DurationDays:     3, // ignored for recurring
		IsRecurring:      true,
		PaymentReference: "pay_recurring",
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.RecurringCycleDays, result.DurationDays)
	assert.Equal(t, int64(1000), result.AmountCents)
	assert.True(t, result.IsRecurring)
	assert.Equal(t, result.StartDate.AddDate(0, 0, pricing.RecurringCycleDays), result.ExpiryDate)
}

func TestPurchaseSeat_DurationClamped(t *testing.T) {
	uc, _, _, _ := newPurchaseFixture(5, 2000)

	result, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           42,
		PoolSID:          "pool_000001",
		DurationDays:     1,
		PaymentReference: "pay_short",
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.MinDurationDays, result.DurationDays)
	assert.Equal(t, int64(67), result.AmountCents)
}

func TestPurchaseSeat_Idempotent(t *testing.T) {
	uc, store, _, _ := newPurchaseFixture(5, 2000)

	first, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           42,
		PoolSID:          "pool_000001",
		DurationDays:     10,
		PaymentReference: "pay_once",
	})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           42,
		PoolSID:          "pool_000001",
		DurationDays:     10,
		PaymentReference: "pay_once",
	})
	require.NoError(t, err)

	assert.Equal(t, first.SID, second.SID)
	assert.Equal(t, 1, store.seatCount(1))
}

func TestPurchaseSeat_PoolFullQueuesRefund(t *testing.T) {
	uc, store, refunds, _ := newPurchaseFixture(1, 2000)

	_, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           1,
		PoolSID:          "pool_000001",
		DurationDays:     10,
		PaymentReference: "pay_winner",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           2,
		PoolSID:          "pool_000001",
		DurationDays:     10,
		PaymentReference: "pay_loser",
	})
	require.ErrorIs(t, err, grant.ErrPoolFullAfterPayment)

	assert.Equal(t, 1, store.seatCount(1))
	assert.Equal(t, 1, refunds.count())

	task, err := refunds.GetByPaymentReference(context.Background(), "pay_loser")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, pricing.ComputeProratedPrice(2000, 10), task.AmountCents())
	assert.Equal(t, grant.RefundStatusPending, task.Status())
}

func TestPurchaseSeat_RetryAfterRefundQueuedStaysCompensated(t *testing.T) {
	uc, _, refunds, _ := newPurchaseFixture(1, 2000)

	_, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           1,
		PoolSID:          "pool_000001",
		DurationDays:     10,
		PaymentReference: "pay_winner",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = uc.Execute(context.Background(), PurchaseSeatCommand{
			UserID:           2,
			PoolSID:          "pool_000001",
			DurationDays:     10,
			PaymentReference: "pay_loser",
		})
		require.ErrorIs(t, err, grant.ErrPoolFullAfterPayment)
	}

	assert.Equal(t, 1, refunds.count())
}

func TestPurchaseSeat_ConcurrentNeverOversells(t *testing.T) {
	const seatCap = 3
	const contenders = 10

	uc, store, refunds, _ := newPurchaseFixture(seatCap, 2000)

	var wg sync.WaitGroup
	results := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), PurchaseSeatCommand{
				UserID:           uint(n + 1),
				PoolSID:          "pool_000001",
				DurationDays:     10,
				PaymentReference: fmt.Sprintf("pay_c%d", n),
			})
			results[n] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	rejected := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, grant.ErrPoolFullAfterPayment):
			rejected++
		}
	}

	assert.Equal(t, seatCap, succeeded)
	assert.Equal(t, contenders-seatCap, rejected)
	assert.Equal(t, seatCap, store.seatCount(1))
	assert.Equal(t, contenders-seatCap, refunds.count())
}

func TestPurchaseSeat_PreconditionFailures(t *testing.T) {
	uc, store, _, _ := newPurchaseFixture(5, 2000)

	_, err := uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:       1,
		PoolSID:      "pool_000001",
		DurationDays: 10,
	})
	assert.ErrorIs(t, err, grant.ErrPaymentReferenceRequired)

	_, err = uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           1,
		PoolSID:          "pool_missing",
		DurationDays:     10,
		PaymentReference: "pay_x",
	})
	assert.ErrorIs(t, err, catalog.ErrPoolNotFound)

	store.pools[1].active = false
	_, err = uc.Execute(context.Background(), PurchaseSeatCommand{
		UserID:           1,
		PoolSID:          "pool_000001",
		DurationDays:     10,
		PaymentReference: "pay_y",
	})
	assert.ErrorIs(t, err, catalog.ErrPoolInactive)
}
