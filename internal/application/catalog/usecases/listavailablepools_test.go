package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type fakeServiceRepo struct {
	services map[string]*catalog.Service
}

func (r *fakeServiceRepo) Create(ctx context.Context, s *catalog.Service) error { return nil }
func (r *fakeServiceRepo) GetByID(ctx context.Context, id uint) (*catalog.Service, error) {
	for _, s := range r.services {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeServiceRepo) GetBySID(ctx context.Context, sid string) (*catalog.Service, error) {
	return r.services[sid], nil
}
func (r *fakeServiceRepo) GetBySlug(ctx context.Context, slug string) (*catalog.Service, error) {
	return nil, nil
}
func (r *fakeServiceRepo) List(ctx context.Context, activeOnly bool) ([]*catalog.Service, error) {
	return nil, nil
}
func (r *fakeServiceRepo) Update(ctx context.Context, s *catalog.Service) error { return nil }
func (r *fakeServiceRepo) Delete(ctx context.Context, id uint) error            { return nil }

type fakePoolRepo struct {
	available map[uint][]*catalog.Pool
	listCalls int
}

func (r *fakePoolRepo) Create(ctx context.Context, p *catalog.Pool) error          { return nil }
func (r *fakePoolRepo) GetByID(ctx context.Context, id uint) (*catalog.Pool, error) { return nil, nil }
func (r *fakePoolRepo) GetBySID(ctx context.Context, sid string) (*catalog.Pool, error) {
	return nil, nil
}
func (r *fakePoolRepo) ListByServiceID(ctx context.Context, serviceID uint) ([]*catalog.Pool, error) {
	return nil, nil
}
func (r *fakePoolRepo) ListAvailableByServiceID(ctx context.Context, serviceID uint) ([]*catalog.Pool, error) {
	r.listCalls++
	return r.available[serviceID], nil
}
func (r *fakePoolRepo) Update(ctx context.Context, p *catalog.Pool) error { return nil }
func (r *fakePoolRepo) Delete(ctx context.Context, id uint) error         { return nil }

type fakeAvailabilityCache struct {
	entries     map[uint]*cache.CachedAvailability
	nullMarkers map[uint]bool
}

func newFakeAvailabilityCache() *fakeAvailabilityCache {
	return &fakeAvailabilityCache{
		entries:     make(map[uint]*cache.CachedAvailability),
		nullMarkers: make(map[uint]bool),
	}
}

func (c *fakeAvailabilityCache) Get(ctx context.Context, serviceID uint) (*cache.CachedAvailability, error) {
	if c.nullMarkers[serviceID] {
		return &cache.CachedAvailability{NotFound: true}, nil
	}
	return c.entries[serviceID], nil
}

func (c *fakeAvailabilityCache) Set(ctx context.Context, serviceID uint, availability *cache.CachedAvailability) error {
	c.entries[serviceID] = availability
	return nil
}

func (c *fakeAvailabilityCache) Invalidate(ctx context.Context, serviceID uint) error {
	delete(c.entries, serviceID)
	delete(c.nullMarkers, serviceID)
	return nil
}

func (c *fakeAvailabilityCache) SetNullMarker(ctx context.Context, serviceID uint) error {
	c.nullMarkers[serviceID] = true
	return nil
}

func testService(t *testing.T, id uint, sid string, active bool) *catalog.Service {
	t.Helper()
	now := time.Now().UTC()
	svc, err := catalog.ReconstructService(id, sid, "Streamly", "streamly", "", 0, active, nil, 1, now, now)
	require.NoError(t, err)
	return svc
}

func testPool(t *testing.T, id uint, serviceID uint, seatCap, seatCount int) *catalog.Pool {
	t.Helper()
	cred, err := vo.ReconstructAccessCredential(vo.AccessTypeAccount, "pool@example.com", "secret", "")
	require.NoError(t, err)
	now := time.Now().UTC()
	pool, err := catalog.ReconstructPool(id, "pool_000001", serviceID, 2000, seatCap, seatCount, cred, true, 1, now, now)
	require.NoError(t, err)
	return pool
}

func newListFixture(t *testing.T) (*ListAvailablePoolsUseCase, *fakeServiceRepo, *fakePoolRepo, *fakeAvailabilityCache) {
	t.Helper()
	serviceRepo := &fakeServiceRepo{services: make(map[string]*catalog.Service)}
	poolRepo := &fakePoolRepo{available: make(map[uint][]*catalog.Pool)}
	availabilityCache := newFakeAvailabilityCache()
	uc := NewListAvailablePoolsUseCase(serviceRepo, poolRepo, availabilityCache, logger.NewLogger())
	return uc, serviceRepo, poolRepo, availabilityCache
}

func TestListAvailablePools_MissFillsCache(t *testing.T) {
	uc, serviceRepo, poolRepo, availabilityCache := newListFixture(t)
	serviceRepo.services["svc_000010"] = testService(t, 10, "svc_000010", true)
	poolRepo.available[10] = []*catalog.Pool{testPool(t, 1, 10, 5, 2)}

	dtos, err := uc.Execute(context.Background(), ListAvailablePoolsQuery{ServiceSID: "svc_000010"})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "pool_000001", dtos[0].PoolSID)
	assert.Equal(t, 3, dtos[0].SeatsLeft)
	assert.Equal(t, int64(1000), dtos[0].DiscountedMonthlyCents)

	cached := availabilityCache.entries[10]
	require.NotNil(t, cached)
	require.Len(t, cached.Pools, 1)
	assert.Equal(t, "pool_000001", cached.Pools[0].PoolSID)
}

func TestListAvailablePools_HitSkipsDatabase(t *testing.T) {
	uc, serviceRepo, poolRepo, _ := newListFixture(t)
	serviceRepo.services["svc_000010"] = testService(t, 10, "svc_000010", true)
	poolRepo.available[10] = []*catalog.Pool{testPool(t, 1, 10, 5, 2)}

	_, err := uc.Execute(context.Background(), ListAvailablePoolsQuery{ServiceSID: "svc_000010"})
	require.NoError(t, err)
	require.Equal(t, 1, poolRepo.listCalls)

	dtos, err := uc.Execute(context.Background(), ListAvailablePoolsQuery{ServiceSID: "svc_000010"})
	require.NoError(t, err)
	assert.Len(t, dtos, 1)
	assert.Equal(t, 1, poolRepo.listCalls, "second read should come from cache")
}

func TestListAvailablePools_InactiveServiceSetsNullMarker(t *testing.T) {
	uc, serviceRepo, _, availabilityCache := newListFixture(t)
	serviceRepo.services["svc_000010"] = testService(t, 10, "svc_000010", false)

	_, err := uc.Execute(context.Background(), ListAvailablePoolsQuery{ServiceSID: "svc_000010"})
	assert.ErrorIs(t, err, catalog.ErrServiceInactive)
	assert.True(t, availabilityCache.nullMarkers[10])

	// The marker short-circuits the next lookup as not found.
	_, err = uc.Execute(context.Background(), ListAvailablePoolsQuery{ServiceSID: "svc_000010"})
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}

func TestListAvailablePools_UnknownService(t *testing.T) {
	uc, _, _, _ := newListFixture(t)

	_, err := uc.Execute(context.Background(), ListAvailablePoolsQuery{ServiceSID: "svc_missing"})
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}
