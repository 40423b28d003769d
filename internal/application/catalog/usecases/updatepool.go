package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type UpdatePoolCommand struct {
	SID               string
	CatalogPriceCents *int64
	SeatCap           *int
	Active            *bool

	// Credential replacement. All three are read only when AccessType is set.
	AccessType   *string
	AccessEmail  string
	AccessSecret string
	InviteLink   string
}

// UpdatePoolUseCase edits a pool's price, cap, state or credential. Existing
// grants are untouched: they keep the amount charged and the credential
// snapshot taken at purchase time.
type UpdatePoolUseCase struct {
	serviceRepo       catalog.ServiceRepository
	poolRepo          catalog.PoolRepository
	availabilityCache cache.PoolAvailabilityCache
	logger            logger.Interface
}

func NewUpdatePoolUseCase(
	serviceRepo catalog.ServiceRepository,
	poolRepo catalog.PoolRepository,
	availabilityCache cache.PoolAvailabilityCache,
	logger logger.Interface,
) *UpdatePoolUseCase {
	return &UpdatePoolUseCase{
		serviceRepo:       serviceRepo,
		poolRepo:          poolRepo,
		availabilityCache: availabilityCache,
		logger:            logger,
	}
}

func (uc *UpdatePoolUseCase) Execute(
	ctx context.Context,
	cmd UpdatePoolCommand,
) (*dto.PoolDTO, error) {
	pool, err := uc.poolRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get pool", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	if pool == nil {
		return nil, catalog.ErrPoolNotFound
	}

	if cmd.CatalogPriceCents != nil {
		if err := pool.UpdatePrice(*cmd.CatalogPriceCents); err != nil {
			return nil, fmt.Errorf("failed to update price: %w", err)
		}
	}

	if cmd.SeatCap != nil {
		if err := pool.UpdateSeatCap(*cmd.SeatCap); err != nil {
			return nil, fmt.Errorf("failed to update seat cap: %w", err)
		}
	}

	if cmd.AccessType != nil {
		credential, err := vo.ReconstructAccessCredential(
			vo.AccessType(*cmd.AccessType),
			cmd.AccessEmail,
			cmd.AccessSecret,
			cmd.InviteLink,
		)
		if err != nil {
			uc.logger.Errorw("invalid access credential", "error", err, "access_type", *cmd.AccessType)
			return nil, fmt.Errorf("invalid access credential: %w", err)
		}
		if err := pool.UpdateCredential(credential); err != nil {
			return nil, fmt.Errorf("failed to update credential: %w", err)
		}
	}

	if cmd.Active != nil {
		if *cmd.Active {
			pool.Activate()
		} else {
			pool.Deactivate()
		}
	}

	if err := uc.poolRepo.Update(ctx, pool); err != nil {
		uc.logger.Errorw("failed to persist pool update", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to persist pool update: %w", err)
	}

	if err := uc.availabilityCache.Invalidate(ctx, pool.ServiceID()); err != nil {
		uc.logger.Warnw("failed to invalidate availability cache",
			"service_id", pool.ServiceID(), "error", err)
	}

	var serviceSID string
	if service, err := uc.serviceRepo.GetByID(ctx, pool.ServiceID()); err == nil && service != nil {
		serviceSID = service.SID()
	}

	uc.logger.Infow("pool updated", "sid", pool.SID())
	return dto.ToPoolDTO(pool, serviceSID), nil
}
