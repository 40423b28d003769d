package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/purchase/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/domain/pricing"
	"github.com/seatshare-inc/seatshare/internal/shared/biztime"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type QuotePurchaseCommand struct {
	PoolSID      string
	DurationDays int
	IsRecurring  bool
}

// QuotePurchaseUseCase computes the exact amount a purchase of the given
// shape will cost. The fullness check here is optimistic: it keeps obviously
// doomed checkouts from reaching the payment provider, but the reservation
// transaction re-checks capacity authoritatively after payment.
type QuotePurchaseUseCase struct {
	poolRepo catalog.PoolRepository
	logger   logger.Interface
}

func NewQuotePurchaseUseCase(
	poolRepo catalog.PoolRepository,
	logger logger.Interface,
) *QuotePurchaseUseCase {
	return &QuotePurchaseUseCase{
		poolRepo: poolRepo,
		logger:   logger,
	}
}

func (uc *QuotePurchaseUseCase) Execute(
	ctx context.Context,
	cmd QuotePurchaseCommand,
) (*dto.QuoteDTO, error) {
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
	if !pool.HasCapacity() {
		return nil, catalog.ErrPoolFull
	}

	durationDays, amountCents := PriceFor(pool.CatalogPriceCents(), cmd.DurationDays, cmd.IsRecurring)

	startDate := biztime.NowUTC()
	return &dto.QuoteDTO{
		PoolSID:      pool.SID(),
		DurationDays: durationDays,
		AmountCents:  amountCents,
		IsRecurring:  cmd.IsRecurring,
		StartDate:    startDate,
		ExpiryDate:   startDate.AddDate(0, 0, durationDays),
	}, nil
}

// PriceFor resolves the effective duration and amount for a purchase shape.
// Recurring purchases always run a full billing cycle at the discounted
// monthly price; one-off purchases are clamped and prorated.
func PriceFor(catalogPriceCents int64, requestedDays int, isRecurring bool) (durationDays int, amountCents int64) {
	if isRecurring {
		return pricing.RecurringCycleDays, pricing.ComputeDiscountedMonthly(catalogPriceCents)
	}
	clamped := pricing.ClampDuration(requestedDays)
	return clamped, pricing.ComputeProratedPrice(catalogPriceCents, clamped)
}
