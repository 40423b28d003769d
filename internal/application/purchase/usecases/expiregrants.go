package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/biztime"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

const expiryBatchSize = 200

// ExpireGrantsUseCase is the expiry sweep: it deactivates grants whose
// expiry date has passed. The sweep is idempotent; a grant already flipped
// inactive by a concurrent run is skipped by the repository's guarded update,
// so two overlapping sweeps converge to the same state.
//
// Seat release is optional. With releaseSeats off an expired grant keeps its
// seat occupied, which matches treating grants as access records rather than
// leases. With it on, the seat returns to the pool atomically with the flip.
type ExpireGrantsUseCase struct {
	grantRepo         grant.Repository
	availabilityCache cache.PoolAvailabilityCache
	releaseSeats      bool
	logger            logger.Interface
}

func NewExpireGrantsUseCase(
	grantRepo grant.Repository,
	availabilityCache cache.PoolAvailabilityCache,
	releaseSeats bool,
	logger logger.Interface,
) *ExpireGrantsUseCase {
	return &ExpireGrantsUseCase{
		grantRepo:         grantRepo,
		availabilityCache: availabilityCache,
		releaseSeats:      releaseSeats,
		logger:            logger,
	}
}

// Execute processes one batch of expired grants and returns how many were
// deactivated.
func (uc *ExpireGrantsUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()

	expired, err := uc.grantRepo.FindExpired(ctx, now, expiryBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired grants: %w", err)
	}

	processed := 0
	touchedServices := make(map[uint]struct{})

	for _, g := range expired {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}

		if uc.releaseSeats {
			if err := uc.grantRepo.DeactivateAndReleaseSeat(ctx, g); err != nil {
				uc.logger.Errorw("failed to expire grant with seat release",
					"grant_sid", g.SID(), "error", err)
				continue
			}
			touchedServices[g.ServiceID()] = struct{}{}
		} else {
			g.MarkExpired()
			if err := uc.grantRepo.Update(ctx, g); err != nil {
				uc.logger.Errorw("failed to expire grant",
					"grant_sid", g.SID(), "error", err)
				continue
			}
		}

		processed++
	}

	// Released seats change the browse listing.
	for serviceID := range touchedServices {
		if err := uc.availabilityCache.Invalidate(ctx, serviceID); err != nil {
			uc.logger.Warnw("failed to invalidate availability cache",
				"service_id", serviceID, "error", err)
		}
	}

	return processed, nil
}
