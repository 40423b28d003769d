package grant

import (
	"context"
	"time"
)

// ReserveSeatParams carries the inputs for the atomic seat reservation.
// The credential snapshot is NOT part of the params: the repository copies
// it from the pool row it locks, so the snapshot always reflects the
// credential at commit time.
type ReserveSeatParams struct {
	UserID           uint
	PoolID           uint
	DurationDays     int
	AmountCents      int64
	IsRecurring      bool
	PaymentReference string
	StartDate        time.Time
	ExpiryDate       time.Time
}

// Repository defines persistence operations for grants.
//
// ReserveSeatAndCreateGrant is the only write path that touches a pool's
// seat count. Implementations must execute it with serializable isolation
// against concurrent invocations on the same pool: re-read the seat count
// inside the transaction, reject when the cap is reached, and commit the
// increment and the grant insert together or not at all. A reservation
// whose payment reference already has a committed grant returns that grant
// (idempotent retry), never a duplicate.
type Repository interface {
	GetByID(ctx context.Context, grantID uint) (*Grant, error)
	GetBySID(ctx context.Context, sid string) (*Grant, error)
	GetByPaymentReference(ctx context.Context, paymentReference string) (*Grant, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Grant, error)

	// ReserveSeatAndCreateGrant atomically checks capacity, increments the
	// pool's seat count and inserts the grant. Returns
	// catalog.ErrPoolNotFound, catalog.ErrPoolInactive or
	// catalog.ErrPoolFull on precondition failure.
	ReserveSeatAndCreateGrant(ctx context.Context, params ReserveSeatParams) (*Grant, error)

	// FindExpired returns active grants whose expiry date has passed.
	FindExpired(ctx context.Context, now time.Time, limit int) ([]*Grant, error)

	Update(ctx context.Context, g *Grant) error

	// DeactivateAndReleaseSeat flips the grant inactive and decrements the
	// owning pool's seat count (floored at zero) in one transaction. Used
	// by the expiry sweep only when seat release is enabled.
	DeactivateAndReleaseSeat(ctx context.Context, g *Grant) error
}

// RefundTaskRepository defines persistence for refund compensation tasks.
type RefundTaskRepository interface {
	Create(ctx context.Context, task *RefundTask) error
	GetByPaymentReference(ctx context.Context, paymentReference string) (*RefundTask, error)
	FindDue(ctx context.Context, now time.Time, limit int) ([]*RefundTask, error)
	Update(ctx context.Context, task *RefundTask) error
}
