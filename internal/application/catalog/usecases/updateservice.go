package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type UpdateServiceCommand struct {
	SID       string
	Name      *string
	IconURL   *string
	SortOrder *int
	Active    *bool

	// Metadata replaces the stored metadata when non-nil.
	Metadata map[string]interface{}
}

type UpdateServiceUseCase struct {
	serviceRepo       catalog.ServiceRepository
	availabilityCache cache.PoolAvailabilityCache
	logger            logger.Interface
}

func NewUpdateServiceUseCase(
	serviceRepo catalog.ServiceRepository,
	availabilityCache cache.PoolAvailabilityCache,
	logger logger.Interface,
) *UpdateServiceUseCase {
	return &UpdateServiceUseCase{
		serviceRepo:       serviceRepo,
		availabilityCache: availabilityCache,
		logger:            logger,
	}
}

func (uc *UpdateServiceUseCase) Execute(
	ctx context.Context,
	cmd UpdateServiceCommand,
) (*dto.ServiceDTO, error) {
	service, err := uc.serviceRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get service", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return nil, catalog.ErrServiceNotFound
	}

	name := service.Name()
	if cmd.Name != nil {
		name = *cmd.Name
	}
	iconURL := service.IconURL()
	if cmd.IconURL != nil {
		iconURL = *cmd.IconURL
	}
	sortOrder := service.SortOrder()
	if cmd.SortOrder != nil {
		sortOrder = *cmd.SortOrder
	}

	if err := service.Update(name, iconURL, sortOrder); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	if cmd.Active != nil {
		if *cmd.Active {
			service.Activate()
		} else {
			service.Deactivate()
		}
	}

	if cmd.Metadata != nil {
		service.UpdateMetadata(cmd.Metadata)
	}

	if err := uc.serviceRepo.Update(ctx, service); err != nil {
		uc.logger.Errorw("failed to persist service update", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to persist service update: %w", err)
	}

	// Activation flips change what the browse listing shows.
	if cmd.Active != nil {
		if err := uc.availabilityCache.Invalidate(ctx, service.ID()); err != nil {
			uc.logger.Warnw("failed to invalidate availability cache",
				"service_id", service.ID(), "error", err)
		}
	}

	uc.logger.Infow("service updated", "sid", service.SID())
	return dto.ToServiceDTO(service), nil
}
