package catalog

import (
	"fmt"
	"time"

	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
	"github.com/seatshare-inc/seatshare/internal/shared/id"
)

// Pool represents a purchasable shared-access offering of a service: one
// shared account or invitation with a hard cap on concurrent grantees.
//
// seatCount is the only mutable shared resource in the system that requires
// synchronized writes. It is mutated exclusively through the repository's
// seat reservation transaction; the entity itself never increments it
// outside of reconstruction.
type Pool struct {
	id                uint
	sid               string
	serviceID         uint
	catalogPriceCents int64
	seatCap           int
	seatCount         int
	credential        vo.AccessCredential
	active            bool
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPool creates a new pool for a service.
func NewPool(serviceID uint, catalogPriceCents int64, seatCap int, credential vo.AccessCredential) (*Pool, error) {
	if serviceID == 0 {
		return nil, fmt.Errorf("service ID is required")
	}
	if catalogPriceCents <= 0 {
		return nil, fmt.Errorf("catalog price must be positive")
	}
	if seatCap < 1 {
		return nil, fmt.Errorf("seat cap must be at least 1")
	}
	if credential.IsZero() {
		return nil, fmt.Errorf("access credential is required")
	}

	now := time.Now().UTC()
	return &Pool{
		sid:               id.MustGenerateWithPrefix(id.PrefixPool, id.DefaultLength),
		serviceID:         serviceID,
		catalogPriceCents: catalogPriceCents,
		seatCap:           seatCap,
		seatCount:         0,
		credential:        credential,
		active:            true,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructPool rebuilds a pool from persistence.
func ReconstructPool(
	poolID uint,
	sid string,
	serviceID uint,
	catalogPriceCents int64,
	seatCap, seatCount int,
	credential vo.AccessCredential,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) (*Pool, error) {
	if poolID == 0 {
		return nil, fmt.Errorf("pool ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("pool SID is required")
	}
	if serviceID == 0 {
		return nil, fmt.Errorf("service ID is required")
	}
	if seatCap < 1 {
		return nil, fmt.Errorf("seat cap must be at least 1")
	}
	if seatCount < 0 || seatCount > seatCap {
		return nil, fmt.Errorf("seat count %d outside [0, %d]", seatCount, seatCap)
	}
	if credential.IsZero() {
		return nil, fmt.Errorf("access credential is required")
	}

	return &Pool{
		id:                poolID,
		sid:               sid,
		serviceID:         serviceID,
		catalogPriceCents: catalogPriceCents,
		seatCap:           seatCap,
		seatCount:         seatCount,
		credential:        credential,
		active:            active,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (p *Pool) ID() uint                        { return p.id }
func (p *Pool) SID() string                     { return p.sid }
func (p *Pool) ServiceID() uint                 { return p.serviceID }
func (p *Pool) CatalogPriceCents() int64        { return p.catalogPriceCents }
func (p *Pool) SeatCap() int                    { return p.seatCap }
func (p *Pool) SeatCount() int                  { return p.seatCount }
func (p *Pool) Credential() vo.AccessCredential { return p.credential }
func (p *Pool) IsActive() bool                  { return p.active }
func (p *Pool) Version() int                    { return p.version }
func (p *Pool) CreatedAt() time.Time            { return p.createdAt }
func (p *Pool) UpdatedAt() time.Time            { return p.updatedAt }

// SetID assigns the database ID after initial persistence.
func (p *Pool) SetID(poolID uint) error {
	if p.id != 0 {
		return fmt.Errorf("pool ID already set")
	}
	if poolID == 0 {
		return fmt.Errorf("pool ID cannot be zero")
	}
	p.id = poolID
	return nil
}

// HasCapacity reports whether at least one seat is free. This is the
// optimistic read; the authoritative check happens inside the seat
// reservation transaction.
func (p *Pool) HasCapacity() bool {
	return p.seatCount < p.seatCap
}

// SeatsLeft returns the number of free seats.
func (p *Pool) SeatsLeft() int {
	left := p.seatCap - p.seatCount
	if left < 0 {
		return 0
	}
	return left
}

// UpdatePrice changes the catalog price. Existing grants keep the amount
// they were charged; only future purchases see the new price.
func (p *Pool) UpdatePrice(catalogPriceCents int64) error {
	if catalogPriceCents <= 0 {
		return fmt.Errorf("catalog price must be positive")
	}
	p.catalogPriceCents = catalogPriceCents
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdateCredential replaces the access credential. Grants hold a snapshot,
// so past purchasers are unaffected.
func (p *Pool) UpdateCredential(credential vo.AccessCredential) error {
	if credential.IsZero() {
		return fmt.Errorf("access credential is required")
	}
	p.credential = credential
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdateSeatCap raises or lowers the cap. Lowering below the current seat
// count is rejected: existing grantees cannot be evicted.
func (p *Pool) UpdateSeatCap(seatCap int) error {
	if seatCap < 1 {
		return fmt.Errorf("seat cap must be at least 1")
	}
	if seatCap < p.seatCount {
		return fmt.Errorf("seat cap %d below current seat count %d", seatCap, p.seatCount)
	}
	p.seatCap = seatCap
	p.updatedAt = time.Now().UTC()
	return nil
}

// Activate makes the pool purchasable again.
func (p *Pool) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.updatedAt = time.Now().UTC()
}

// Deactivate excludes the pool from availability listings without deleting
// it or its grants.
func (p *Pool) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.updatedAt = time.Now().UTC()
}
