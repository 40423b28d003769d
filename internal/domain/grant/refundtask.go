package grant

import (
	"fmt"
	"time"

	"github.com/seatshare-inc/seatshare/internal/shared/id"
)

// RefundStatus is the lifecycle state of a refund task.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusSucceeded RefundStatus = "succeeded"
	RefundStatusFailed    RefundStatus = "failed"
)

// RefundTask is the compensation record for a payment that was captured but
// could not be honored with a seat (pool filled between payment and the
// atomic reservation step). Tasks are retried asynchronously with bounded
// attempts; payment reference uniqueness makes retries idempotent.
type RefundTask struct {
	id               uint
	sid              string
	paymentReference string
	amountCents      int64
	reason           string
	status           RefundStatus
	attempts         int
	lastError        string
	nextAttemptAt    time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewRefundTask creates a pending refund task due immediately.
func NewRefundTask(paymentReference string, amountCents int64, reason string) (*RefundTask, error) {
	if paymentReference == "" {
		return nil, fmt.Errorf("payment reference is required")
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("refund amount must be positive")
	}

	now := time.Now().UTC()
	return &RefundTask{
		sid:              id.MustGenerateWithPrefix(id.PrefixRefund, id.DefaultLength),
		paymentReference: paymentReference,
		amountCents:      amountCents,
		reason:           reason,
		status:           RefundStatusPending,
		nextAttemptAt:    now,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructRefundTask rebuilds a refund task from persistence.
func ReconstructRefundTask(
	taskID uint,
	sid, paymentReference string,
	amountCents int64,
	reason string,
	status RefundStatus,
	attempts int,
	lastError string,
	nextAttemptAt time.Time,
	createdAt, updatedAt time.Time,
) (*RefundTask, error) {
	if taskID == 0 {
		return nil, fmt.Errorf("refund task ID cannot be zero")
	}
	if paymentReference == "" {
		return nil, fmt.Errorf("payment reference is required")
	}

	return &RefundTask{
		id:               taskID,
		sid:              sid,
		paymentReference: paymentReference,
		amountCents:      amountCents,
		reason:           reason,
		status:           status,
		attempts:         attempts,
		lastError:        lastError,
		nextAttemptAt:    nextAttemptAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (r *RefundTask) ID() uint                  { return r.id }
func (r *RefundTask) SID() string               { return r.sid }
func (r *RefundTask) PaymentReference() string  { return r.paymentReference }
func (r *RefundTask) AmountCents() int64        { return r.amountCents }
func (r *RefundTask) Reason() string            { return r.reason }
func (r *RefundTask) Status() RefundStatus      { return r.status }
func (r *RefundTask) Attempts() int             { return r.attempts }
func (r *RefundTask) LastError() string         { return r.lastError }
func (r *RefundTask) NextAttemptAt() time.Time  { return r.nextAttemptAt }
func (r *RefundTask) CreatedAt() time.Time      { return r.createdAt }
func (r *RefundTask) UpdatedAt() time.Time      { return r.updatedAt }

// SetID assigns the database ID after initial persistence.
func (r *RefundTask) SetID(taskID uint) error {
	if r.id != 0 {
		return fmt.Errorf("refund task ID already set")
	}
	if taskID == 0 {
		return fmt.Errorf("refund task ID cannot be zero")
	}
	r.id = taskID
	return nil
}

// MarkSucceeded completes the task.
func (r *RefundTask) MarkSucceeded() {
	r.status = RefundStatusSucceeded
	r.updatedAt = time.Now().UTC()
}

// RecordFailure notes a failed attempt and schedules the next one with
// exponential backoff (base 1 minute, doubled per attempt, capped at 1 hour).
// Once maxAttempts is reached the task is marked failed.
func (r *RefundTask) RecordFailure(attemptErr error, maxAttempts int) {
	r.attempts++
	if attemptErr != nil {
		r.lastError = attemptErr.Error()
	}

	if r.attempts >= maxAttempts {
		r.status = RefundStatusFailed
	} else {
		backoff := time.Minute << (r.attempts - 1)
		if backoff > time.Hour {
			backoff = time.Hour
		}
		r.nextAttemptAt = time.Now().UTC().Add(backoff)
	}
	r.updatedAt = time.Now().UTC()
}

// IsDue reports whether the task should be attempted now.
func (r *RefundTask) IsDue(now time.Time) bool {
	return r.status == RefundStatusPending && !now.Before(r.nextAttemptAt)
}
