package grant

import (
	"fmt"
	"time"

	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
	"github.com/seatshare-inc/seatshare/internal/shared/id"
)

// Grant is a user's purchased access record for a pool seat. Grants are
// purchase history: they are never mutated after creation except for the
// active flag flipped by the expiry sweep, and never deleted automatically.
//
// The credential is snapshotted from the pool at purchase time so later pool
// edits don't retroactively change what a past purchaser sees. The userID
// reference may dangle after user deletion; readers must tolerate that.
type Grant struct {
	id               uint
	sid              string
	userID           uint
	poolID           uint
	serviceID        uint
	startDate        time.Time
	expiryDate       time.Time
	durationDays     int
	amountCents      int64
	isRecurring      bool
	paymentReference string
	credential       vo.AccessCredential
	active           bool
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewGrant creates a new grant. The caller supplies the amount computed by
// the pricing engine and the credential snapshot read from the pool inside
// the seat reservation transaction.
func NewGrant(
	userID, poolID, serviceID uint,
	startDate, expiryDate time.Time,
	durationDays int,
	amountCents int64,
	isRecurring bool,
	paymentReference string,
	credential vo.AccessCredential,
) (*Grant, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if poolID == 0 {
		return nil, fmt.Errorf("pool ID is required")
	}
	if serviceID == 0 {
		return nil, fmt.Errorf("service ID is required")
	}
	if paymentReference == "" {
		return nil, fmt.Errorf("payment reference is required")
	}
	if !expiryDate.After(startDate) {
		return nil, fmt.Errorf("expiry date must be after start date")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("charged amount must be positive")
	}
	if credential.IsZero() {
		return nil, fmt.Errorf("credential snapshot is required")
	}

	now := time.Now().UTC()
	return &Grant{
		sid:              id.MustGenerateWithPrefix(id.PrefixGrant, id.DefaultLength),
		userID:           userID,
		poolID:           poolID,
		serviceID:        serviceID,
		startDate:        startDate,
		expiryDate:       expiryDate,
		durationDays:     durationDays,
		amountCents:      amountCents,
		isRecurring:      isRecurring,
		paymentReference: paymentReference,
		credential:       credential,
		active:           true,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructGrant rebuilds a grant from persistence.
func ReconstructGrant(
	grantID uint,
	sid string,
	userID, poolID, serviceID uint,
	startDate, expiryDate time.Time,
	durationDays int,
	amountCents int64,
	isRecurring bool,
	paymentReference string,
	credential vo.AccessCredential,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) (*Grant, error) {
	if grantID == 0 {
		return nil, fmt.Errorf("grant ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("grant SID is required")
	}
	if paymentReference == "" {
		return nil, fmt.Errorf("payment reference is required")
	}
	if !expiryDate.After(startDate) {
		return nil, fmt.Errorf("expiry date must be after start date")
	}

	return &Grant{
		id:               grantID,
		sid:              sid,
		userID:           userID,
		poolID:           poolID,
		serviceID:        serviceID,
		startDate:        startDate,
		expiryDate:       expiryDate,
		durationDays:     durationDays,
		amountCents:      amountCents,
		isRecurring:      isRecurring,
		paymentReference: paymentReference,
		credential:       credential,
		active:           active,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (g *Grant) ID() uint                        { return g.id }
func (g *Grant) SID() string                     { return g.sid }
func (g *Grant) UserID() uint                    { return g.userID }
func (g *Grant) PoolID() uint                    { return g.poolID }
func (g *Grant) ServiceID() uint                 { return g.serviceID }
func (g *Grant) StartDate() time.Time            { return g.startDate }
func (g *Grant) ExpiryDate() time.Time           { return g.expiryDate }
func (g *Grant) DurationDays() int               { return g.durationDays }
func (g *Grant) AmountCents() int64              { return g.amountCents }
func (g *Grant) IsRecurring() bool               { return g.isRecurring }
func (g *Grant) PaymentReference() string        { return g.paymentReference }
func (g *Grant) Credential() vo.AccessCredential { return g.credential }
func (g *Grant) IsActive() bool                  { return g.active }
func (g *Grant) Version() int                    { return g.version }
func (g *Grant) CreatedAt() time.Time            { return g.createdAt }
func (g *Grant) UpdatedAt() time.Time            { return g.updatedAt }

// SetID assigns the database ID after initial persistence.
func (g *Grant) SetID(grantID uint) error {
	if g.id != 0 {
		return fmt.Errorf("grant ID already set")
	}
	if grantID == 0 {
		return fmt.Errorf("grant ID cannot be zero")
	}
	g.id = grantID
	return nil
}

// IsExpired reports whether the grant is past its expiry date.
func (g *Grant) IsExpired(now time.Time) bool {
	return now.After(g.expiryDate)
}

// MarkExpired flips the active flag off. The true-to-false flip is
// idempotent, which keeps the expiry sweep safe to run concurrently.
func (g *Grant) MarkExpired() {
	if !g.active {
		return
	}
	g.active = false
	g.updatedAt = time.Now().UTC()
}
