package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seatshare-inc/seatshare/internal/application/payment/paymentgateway"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/errors"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLogger()
}

// poolState is the mutable pool row shared between the fake repositories,
// mirroring what the real ones see in the pools table.
type poolState struct {
	id         uint
	sid        string
	serviceID  uint
	priceCents int64
	seatCap    int
	seatCount  int
	active     bool
	credential vo.AccessCredential
}

type fakeStore struct {
	mu          sync.Mutex
	pools       map[uint]*poolState
	grantsByRef map[string]*grant.Grant
	nextGrantID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pools:       make(map[uint]*poolState),
		grantsByRef: make(map[string]*grant.Grant),
	}
}

func (s *fakeStore) addPool(id uint, serviceID uint, priceCents int64, seatCap int) *poolState {
	cred, _ := vo.NewAccountCredential("pool@example.com", "secret")
	p := &poolState{
		id:         id,
		sid:        fmt.Sprintf("pool_%06d", id),
		serviceID:  serviceID,
		priceCents: priceCents,
		seatCap:    seatCap,
		active:     true,
		credential: cred,
	}
	s.pools[id] = p
	return p
}

func (s *fakeStore) seatCount(poolID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pools[poolID].seatCount
}

type fakePoolRepo struct {
	store *fakeStore
}

func (r *fakePoolRepo) Create(ctx context.Context, pool *catalog.Pool) error { return nil }

func (r *fakePoolRepo) GetByID(ctx context.Context, poolID uint) (*catalog.Pool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.pools[poolID]
	if !ok {
		return nil, nil
	}
	return reconstructPool(p)
}

func (r *fakePoolRepo) GetBySID(ctx context.Context, sid string) (*catalog.Pool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.pools {
		if p.sid == sid {
			return reconstructPool(p)
		}
	}
	return nil, nil
}

func (r *fakePoolRepo) ListByServiceID(ctx context.Context, serviceID uint) ([]*catalog.Pool, error) {
	return nil, nil
}

func (r *fakePoolRepo) ListAvailableByServiceID(ctx context.Context, serviceID uint) ([]*catalog.Pool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var pools []*catalog.Pool
	for _, p := range r.store.pools {
		if p.serviceID == serviceID && p.active && p.seatCount < p.seatCap {
			pool, err := reconstructPool(p)
			if err != nil {
				return nil, err
			}
			pools = append(pools, pool)
		}
	}
	return pools, nil
}

func (r *fakePoolRepo) Update(ctx context.Context, pool *catalog.Pool) error { return nil }
func (r *fakePoolRepo) Delete(ctx context.Context, poolID uint) error        { return nil }

func reconstructPool(p *poolState) (*catalog.Pool, error) {
	now := time.Now().UTC()
	return catalog.ReconstructPool(
		p.id, p.sid, p.serviceID, p.priceCents,
		p.seatCap, p.seatCount, p.credential, p.active,
		1, now, now,
	)
}

type fakeGrantRepo struct {
	store *fakeStore
}

func (r *fakeGrantRepo) GetByID(ctx context.Context, grantID uint) (*grant.Grant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, g := range r.store.grantsByRef {
		if g.ID() == grantID {
			return g, nil
		}
	}
	return nil, nil
}

func (r *fakeGrantRepo) GetBySID(ctx context.Context, sid string) (*grant.Grant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, g := range r.store.grantsByRef {
		if g.SID() == sid {
			return g, nil
		}
	}
	return nil, nil
}

func (r *fakeGrantRepo) GetByPaymentReference(ctx context.Context, paymentReference string) (*grant.Grant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.grantsByRef[paymentReference], nil
}

func (r *fakeGrantRepo) ListByUserID(ctx context.Context, userID uint) ([]*grant.Grant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var grants []*grant.Grant
	for _, g := range r.store.grantsByRef {
		if g.UserID() == userID {
			grants = append(grants, g)
		}
	}
	return grants, nil
}

// ReserveSeatAndCreateGrant mirrors the real transaction semantics: the
// store mutex stands in for the row lock, so the capacity check, increment
// and insert are atomic against concurrent reservations.
func (r *fakeGrantRepo) ReserveSeatAndCreateGrant(ctx context.Context, params grant.ReserveSeatParams) (*grant.Grant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.grantsByRef[params.PaymentReference]; ok {
		return existing, nil
	}

	pool, ok := r.store.pools[params.PoolID]
	if !ok {
		return nil, catalog.ErrPoolNotFound
	}
	if !pool.active {
		return nil, catalog.ErrPoolInactive
	}
	if pool.seatCount >= pool.seatCap {
		return nil, catalog.ErrPoolFull
	}

	g, err := grant.NewGrant(
		params.UserID, params.PoolID, pool.serviceID,
		params.StartDate, params.ExpiryDate,
		params.DurationDays, params.AmountCents,
		params.IsRecurring, params.PaymentReference,
		pool.credential,
	)
	if err != nil {
		return nil, err
	}

	r.store.nextGrantID++
	if err := g.SetID(r.store.nextGrantID); err != nil {
		return nil, err
	}

	pool.seatCount++
	r.store.grantsByRef[params.PaymentReference] = g
	return g, nil
}

func (r *fakeGrantRepo) FindExpired(ctx context.Context, now time.Time, limit int) ([]*grant.Grant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var expired []*grant.Grant
	for _, g := range r.store.grantsByRef {
		if g.IsActive() && g.IsExpired(now) {
			expired = append(expired, g)
			if limit > 0 && len(expired) >= limit {
				break
			}
		}
	}
	return expired, nil
}

func (r *fakeGrantRepo) Update(ctx context.Context, g *grant.Grant) error {
	return nil
}

func (r *fakeGrantRepo) DeactivateAndReleaseSeat(ctx context.Context, g *grant.Grant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !g.IsActive() {
		return nil
	}
	g.MarkExpired()
	if pool, ok := r.store.pools[g.PoolID()]; ok && pool.seatCount > 0 {
		pool.seatCount--
	}
	return nil
}

type fakeRefundTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*grant.RefundTask
}

func newFakeRefundTaskRepo() *fakeRefundTaskRepo {
	return &fakeRefundTaskRepo{tasks: make(map[string]*grant.RefundTask)}
}

func (r *fakeRefundTaskRepo) Create(ctx context.Context, task *grant.RefundTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.PaymentReference()]; ok {
		return errors.NewConflictError("refund task already exists for payment")
	}
	if err := task.SetID(uint(len(r.tasks) + 1)); err != nil {
		return err
	}
	r.tasks[task.PaymentReference()] = task
	return nil
}

func (r *fakeRefundTaskRepo) GetByPaymentReference(ctx context.Context, paymentReference string) (*grant.RefundTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks[paymentReference], nil
}

func (r *fakeRefundTaskRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]*grant.RefundTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*grant.RefundTask
	for _, t := range r.tasks {
		if t.IsDue(now) {
			due = append(due, t)
			if limit > 0 && len(due) >= limit {
				break
			}
		}
	}
	return due, nil
}

func (r *fakeRefundTaskRepo) Update(ctx context.Context, task *grant.RefundTask) error {
	return nil
}

func (r *fakeRefundTaskRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

type fakeAvailabilityCache struct {
	mu            sync.Mutex
	invalidations int
}

func (c *fakeAvailabilityCache) Get(ctx context.Context, serviceID uint) (*cache.CachedAvailability, error) {
	return nil, nil
}

func (c *fakeAvailabilityCache) Set(ctx context.Context, serviceID uint, availability *cache.CachedAvailability) error {
	return nil
}

func (c *fakeAvailabilityCache) Invalidate(ctx context.Context, serviceID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	return nil
}

func (c *fakeAvailabilityCache) SetNullMarker(ctx context.Context, serviceID uint) error {
	return nil
}

type fakeGateway struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (g *fakeGateway) Refund(ctx context.Context, req paymentgateway.RefundRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.calls <= g.failures {
		return fmt.Errorf("gateway unavailable")
	}
	return nil
}
