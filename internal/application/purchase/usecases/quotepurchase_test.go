package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/domain/pricing"
)

func TestQuotePurchase_ProratedAmounts(t *testing.T) {
	store := newFakeStore()
	store.addPool(1, 10, 2000, 5)
	uc := NewQuotePurchaseUseCase(&fakePoolRepo{store: store}, testLogger())

	tests := []struct {
		name         string
		days         int
		wantDays     int
		wantCents    int64
	}{
		{"full half month", 15, 15, 500},
		{"two days rounds up", 2, 2, 67},
		{"below minimum clamps", 1, 2, 67},
		{"above maximum clamps", 45, 15, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := uc.Execute(context.Background(), QuotePurchaseCommand{
				PoolSID:      "pool_000001",
				DurationDays: tt.days,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, quote.DurationDays)
			assert.Equal(t, tt.wantCents, quote.AmountCents)
			assert.Equal(t, quote.StartDate.AddDate(0, 0, tt.wantDays), quote.ExpiryDate)
		})
	}
}

func TestQuotePurchase_Recurring(t *testing.T) {
	store := newFakeStore()
	store.addPool(1, 10, 2000, 5)
	uc := NewQuotePurchaseUseCase(&fakePoolRepo{store: store}, testLogger())

	quote, err := uc.Execute(context.Background(), QuotePurchaseCommand{
		PoolSID:     "pool_000001",
		IsRecurring: true,
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.RecurringCycleDays, quote.DurationDays)
	assert.Equal(t, int64(1000), quote.AmountCents)
	assert.True(t, quote.IsRecurring)
}

func TestQuotePurchase_FullPoolRejected(t *testing.T) {
	store := newFakeStore()
	p := store.addPool(1, 10, 2000, 2)
	p.seatCount = 2
	uc := NewQuotePurchaseUseCase(&fakePoolRepo{store: store}, testLogger())

	_, err := uc.Execute(context.Background(), QuotePurchaseCommand{
		PoolSID:      "pool_000001",
		DurationDays: 10,
	})
	assert.ErrorIs(t, err, catalog.ErrPoolFull)
}

func TestQuotePurchase_InactiveAndMissing(t *testing.T) {
	store := newFakeStore()
	p := store.addPool(1, 10, 2000, 2)
	p.active = false
	uc := NewQuotePurchaseUseCase(&fakePoolRepo{store: store}, testLogger())

	_, err := uc.Execute(context.Background(), QuotePurchaseCommand{
		PoolSID:      "pool_000001",
		DurationDays: 10,
	})
	assert.ErrorIs(t, err, catalog.ErrPoolInactive)

	_, err = uc.Execute(context.Background(), QuotePurchaseCommand{
		PoolSID:      "pool_missing",
		DurationDays: 10,
	})
	assert.ErrorIs(t, err, catalog.ErrPoolNotFound)
}
