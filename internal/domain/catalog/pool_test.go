package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
)

func accountCred(t *testing.T) vo.AccessCredential {
	t.Helper()
	cred, err := vo.NewAccountCredential("share@example.com", "s3cret")
	require.NoError(t, err)
	return cred
}

func TestNewPool_ValidInput(t *testing.T) {
	pool, err := NewPool(1, 2000, 4, accountCred(t))

	require.NoError(t, err)
	require.NotNil(t, pool)
	assert.True(t, strings.HasPrefix(pool.SID(), "pool_"))
	assert.Equal(t, uint(1), pool.ServiceID())
	assert.Equal(t, int64(2000), pool.CatalogPriceCents())
	assert.Equal(t, 4, pool.SeatCap())
	assert.Equal(t, 0, pool.SeatCount())
	assert.Equal(t, 4, pool.SeatsLeft())
	assert.True(t, pool.IsActive())
	assert.True(t, pool.HasCapacity())
	assert.Equal(t, 1, pool.Version())
}

func TestNewPool_Invalid(t *testing.T) {
	cred := accountCred(t)

	tests := []struct {
		name string
		fn   func() (*Pool, error)
	}{
		{"zero service ID", func() (*Pool, error) { return NewPool(0, 2000, 4, cred) }},
		{"zero price", func() (*Pool, error) { return NewPool(1, 0, 4, cred) }},
		{"negative price", func() (*Pool, error) { return NewPool(1, -100, 4, cred) }},
		{"zero seat cap", func() (*Pool, error) { return NewPool(1, 2000, 0, cred) }},
		{"empty credential", func() (*Pool, error) { return NewPool(1, 2000, 4, vo.AccessCredential{}) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pool, err := tc.fn()
			assert.Error(t, err)
			assert.Nil(t, pool)
		})
	}
}

func TestReconstructPool_SeatCountBounds(t *testing.T) {
	cred := accountCred(t)
	now := time.Now().UTC()

	pool, err := ReconstructPool(7, "pool_abc", 1, 2000, 3, 3, cred, true, 1, now, now)
	require.NoError(t, err)
	assert.False(t, pool.HasCapacity())
	assert.Equal(t, 0, pool.SeatsLeft())

	_, err = ReconstructPool(7, "pool_abc", 1, 2000, 3, 4, cred, true, 1, now, now)
	assert.Error(t, err, "seat count above cap must be rejected")

	_, err = ReconstructPool(7, "pool_abc", 1, 2000, 3, -1, cred, true, 1, now, now)
	assert.Error(t, err)
}

func TestPool_UpdateSeatCap(t *testing.T) {
	cred := accountCred(t)
	now := time.Now().UTC()
	pool, err := ReconstructPool(7, "pool_abc", 1, 2000, 5, 3, cred, true, 1, now, now)
	require.NoError(t, err)

	require.NoError(t, pool.UpdateSeatCap(3))
	assert.Equal(t, 3, pool.SeatCap())
	assert.False(t, pool.HasCapacity())

	assert.Error(t, pool.UpdateSeatCap(2), "cannot evict existing grantees")
	assert.Error(t, pool.UpdateSeatCap(0))
}

func TestPool_UpdateCredential(t *testing.T) {
	pool, err := NewPool(1, 2000, 4, accountCred(t))
	require.NoError(t, err)

	invite, err := vo.NewInvitationCredential("https://svc.example.com/invite/xyz")
	require.NoError(t, err)

	require.NoError(t, pool.UpdateCredential(invite))
	assert.Equal(t, vo.AccessTypeInvitation, pool.Credential().AccessType())

	assert.Error(t, pool.UpdateCredential(vo.AccessCredential{}))
}

func TestPool_ActivateDeactivate(t *testing.T) {
	pool, err := NewPool(1, 2000, 4, accountCred(t))
	require.NoError(t, err)

	pool.Deactivate()
	assert.False(t, pool.IsActive())

	pool.Activate()
	assert.True(t, pool.IsActive())
}

func TestNewService(t *testing.T) {
	svc, err := NewService("Streamly", "streamly", "https://cdn.example.com/streamly.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svc.SID(), "svc_"))
	assert.Equal(t, "Streamly", svc.Name())
	assert.True(t, svc.IsActive())

	_, err = NewService("", "slug", "")
	assert.Error(t, err)

	_, err = NewService("Name", "", "")
	assert.Error(t, err)
}
