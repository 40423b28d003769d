package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatshare-inc/seatshare/internal/domain/grant"
)

// seedExpiredGrant plants an active grant whose expiry is already in the past.
func seedExpiredGrant(t *testing.T, store *fakeStore, poolID uint, ref string) *grant.Grant {
	t.Helper()
	pool := store.pools[poolID]
	start := time.Now().UTC().AddDate(0, 0, -20)
	g, err := grant.NewGrant(
		1, poolID, pool.serviceID,
		start, start.AddDate(0, 0, 10),
		10, 500, false, ref, pool.credential,
	)
	require.NoError(t, err)
	store.nextGrantID++
	require.NoError(t, g.SetID(store.nextGrantID))
	store.grantsByRef[ref] = g
	pool.seatCount++
	return g
}

func TestExpireGrants_DeactivatesPastExpiry(t *testing.T) {
	store := newFakeStore()
	store.addPool(1, 10, 2000, 5)
	for i := 0; i < 3; i++ {
		seedExpiredGrant(t, store, 1, fmt.Sprintf("pay_old%d", i))
	}

	uc := NewExpireGrantsUseCase(&fakeGrantRepo{store: store}, &fakeAvailabilityCache{}, false, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, g := range store.grantsByRef {
		assert.False(t, g.IsActive())
	}
	// Seats stay occupied when release is disabled.
	assert.Equal(t, 3, store.seatCount(1))
}

func TestExpireGrants_SecondSweepIsNoop(t *testing.T) {
	store := newFakeStore()
	store.addPool(1, 10, 2000, 5)
	seedExpiredGrant(t, store, 1, "pay_old")

	uc := NewExpireGrantsUseCase(&fakeGrantRepo{store: store}, &fakeAvailabilityCache{}, false, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestExpireGrants_ReleaseSeatsFreesCapacity(t *testing.T) {
	store := newFakeStore()
	store.addPool(1, 10, 2000, 5)
	seedExpiredGrant(t, store, 1, "pay_old1")
	seedExpiredGrant(t, store, 1, "pay_old2")

	availability := &fakeAvailabilityCache{}
	uc := NewExpireGrantsUseCase(&fakeGrantRepo{store: store}, availability, true, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, store.seatCount(1))
	assert.Equal(t, 1, availability.invalidations)
}

func TestExpireGrants_ActiveUnexpiredUntouched(t *testing.T) {
	store := newFakeStore()
	pool := store.addPool(1, 10, 2000, 5)
	start := time.Now().UTC()
	g, err := grant.NewGrant(
		1, 1, pool.serviceID,
		start, start.AddDate(0, 0, 10),
		10, 500, false, "pay_live", pool.credential,
	)
	require.NoError(t, err)
	require.NoError(t, g.SetID(1))
	store.grantsByRef["pay_live"] = g
	pool.seatCount++

	uc := NewExpireGrantsUseCase(&fakeGrantRepo{store: store}, &fakeAvailabilityCache{}, false, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.True(t, g.IsActive())
}
