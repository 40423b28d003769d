package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/purchase/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/biztime"
	"github.com/seatshare-inc/seatshare/internal/shared/errors"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type PurchaseSeatCommand struct {
	UserID           uint
	PoolSID          string
	DurationDays     int
	IsRecurring      bool
	PaymentReference string
}

// PurchaseSeatUseCase records a purchase after the payment provider has
// captured the charge. The amount is recomputed server-side from the pool's
// catalog price so a tampered client quote cannot change what gets recorded.
//
// When the pool filled between payment and reservation, the use case queues
// a refund task and reports the distinct post-payment failure so the caller
// can tell the purchaser their money is coming back.
type PurchaseSeatUseCase struct {
	poolRepo          catalog.PoolRepository
	grantRepo         grant.Repository
	refundTaskRepo    grant.RefundTaskRepository
	availabilityCache cache.PoolAvailabilityCache
	logger            logger.Interface
}

func NewPurchaseSeatUseCase(
	poolRepo catalog.PoolRepository,
	grantRepo grant.Repository,
	refundTaskRepo grant.RefundTaskRepository,
	availabilityCache cache.PoolAvailabilityCache,
	logger logger.Interface,
) *PurchaseSeatUseCase {
	return &PurchaseSeatUseCase{
		poolRepo:          poolRepo,
		grantRepo:         grantRepo,
		refundTaskRepo:    refundTaskRepo,
		availabilityCache: availabilityCache,
		logger:            logger,
	}
}

func (uc *PurchaseSeatUseCase) Execute(
	ctx context.Context,
	cmd PurchaseSeatCommand,
) (*dto.GrantDTO, error) {
	if cmd.PaymentReference == "" {
		return nil, grant.ErrPaymentReferenceRequired
	}

	// Idempotent retry fast path: a committed grant for this payment wins.
	existing, err := uc.grantRepo.GetByPaymentReference(ctx, cmd.PaymentReference)
	if err != nil {
		uc.logger.Errorw("failed to check payment reference",
			"payment_reference", cmd.PaymentReference, "error", err)
		return nil, fmt.Errorf("failed to check payment reference: %w", err)
	}
	if existing != nil {
		uc.logger.Infow("purchase retry resolved to committed grant",
			"payment_reference", cmd.PaymentReference,
			"grant_sid", existing.SID())
		return dto.ToGrantDTO(existing), nil
	}

	pool, err := uc.poolRepo.GetBySID(ctx, cmd.PoolSID)
	if err != nil {
		uc.logger.Errorw("failed to get pool", "error", err, "pool_sid", cmd.PoolSID)
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	if pool == nil {
		return nil, catalog.ErrPoolNotFound
	}
	if !pool.IsActive() {
		return nil, catalog.ErrPoolInactive
	}

	durationDays, amountCents := PriceFor(pool.CatalogPriceCents(), cmd.DurationDays, cmd.IsRecurring)
	if amountCents <= 0 {
		return nil, errors.NewValidationError("purchase amount resolves to zero")
	}

	startDate := biztime.NowUTC()
	reserved, err := uc.grantRepo.ReserveSeatAndCreateGrant(ctx, grant.ReserveSeatParams{
		UserID:           cmd.UserID,
		PoolID:           pool.ID(),
		DurationDays:     durationDays,
		AmountCents:      amountCents,
		IsRecurring:      cmd.IsRecurring,
		PaymentReference: cmd.PaymentReference,
		StartDate:        startDate,
		ExpiryDate:       startDate.AddDate(0, 0, durationDays),
	})
	if err != nil {
		if stderrors.Is(err, catalog.ErrPoolFull) {
			return nil, uc.compensate(ctx, cmd, amountCents)
		}
		uc.logger.Errorw("seat reservation failed",
			"pool_sid", cmd.PoolSID,
			"payment_reference", cmd.PaymentReference,
			"error", err)
		return nil, fmt.Errorf("seat reservation failed: %w", err)
	}

	if err := uc.availabilityCache.Invalidate(ctx, pool.ServiceID()); err != nil {
		uc.logger.Warnw("failed to invalidate availability cache",
			"service_id", pool.ServiceID(), "error", err)
	}

	uc.logger.Infow("seat purchased",
		"grant_sid", reserved.SID(),
		"pool_sid", pool.SID(),
		"user_id", cmd.UserID,
		"amount_cents", amountCents,
		"duration_days", durationDays,
		"is_recurring", cmd.IsRecurring)
	return dto.ToGrantDTO(reserved), nil
}

// compensate queues a refund for a payment whose seat vanished before the
// reservation committed. Queueing is idempotent on the payment reference.
func (uc *PurchaseSeatUseCase) compensate(ctx context.Context, cmd PurchaseSeatCommand, amountCents int64) error {
	task, err := grant.NewRefundTask(cmd.PaymentReference, amountCents, "pool filled after payment")
	if err != nil {
		uc.logger.Errorw("failed to build refund task",
			"payment_reference", cmd.PaymentReference, "error", err)
		return fmt.Errorf("failed to build refund task: %w", err)
	}

	if err := uc.refundTaskRepo.Create(ctx, task); err != nil {
		if errors.IsConflictError(err) {
			// A previous attempt already queued the refund.
			return grant.ErrPoolFullAfterPayment
		}
		uc.logger.Errorw("failed to queue refund task",
			"payment_reference", cmd.PaymentReference, "error", err)
		return fmt.Errorf("failed to queue refund task: %w", err)
	}

	uc.logger.Warnw("pool filled after payment, refund queued",
		"pool_sid", cmd.PoolSID,
		"payment_reference", cmd.PaymentReference,
		"amount_cents", amountCents)
	return grant.ErrPoolFullAfterPayment
}
