package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type DeleteServiceCommand struct {
	SID string
}

// DeleteServiceUseCase removes a service with all of its pools and grants.
// This is the only operation that deletes grants; everywhere else they are
// immutable purchase history.
type DeleteServiceUseCase struct {
	serviceRepo       catalog.ServiceRepository
	availabilityCache cache.PoolAvailabilityCache
	logger            logger.Interface
}

func NewDeleteServiceUseCase(
	serviceRepo catalog.ServiceRepository,
	availabilityCache cache.PoolAvailabilityCache,
	logger logger.Interface,
) *DeleteServiceUseCase {
	return &DeleteServiceUseCase{
		serviceRepo:       serviceRepo,
		availabilityCache: availabilityCache,
		logger:            logger,
	}
}

func (uc *DeleteServiceUseCase) Execute(ctx context.Context, cmd DeleteServiceCommand) error {
	service, err := uc.serviceRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get service", "error", err, "sid", cmd.SID)
		return fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return catalog.ErrServiceNotFound
	}

	if err := uc.serviceRepo.Delete(ctx, service.ID()); err != nil {
		uc.logger.Errorw("failed to delete service", "error", err, "sid", cmd.SID)
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if err := uc.availabilityCache.Invalidate(ctx, service.ID()); err != nil {
		uc.logger.Warnw("failed to invalidate availability cache",
			"service_id", service.ID(), "error", err)
	}

	uc.logger.Infow("service deleted", "sid", cmd.SID)
	return nil
}
