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

type CreatePoolCommand struct {
	ServiceSID        string
	CatalogPriceCents int64
	SeatCap           int
	AccessType        string
	AccessEmail       string
	AccessSecret      string
	InviteLink        string
}

type CreatePoolUseCase struct {
	serviceRepo       catalog.ServiceRepository
	poolRepo          catalog.PoolRepository
	availabilityCache cache.PoolAvailabilityCache
	logger            logger.Interface
}

func NewCreatePoolUseCase(
	serviceRepo catalog.ServiceRepository,
	poolRepo catalog.PoolRepository,
	availabilityCache cache.PoolAvailabilityCache,
	logger logger.Interface,
) *CreatePoolUseCase {
	return &CreatePoolUseCase{
		serviceRepo:       serviceRepo,
		poolRepo:          poolRepo,
		availabilityCache: availabilityCache,
		logger:            logger,
	}
}

func (uc *CreatePoolUseCase) Execute(
	ctx context.Context,
	cmd CreatePoolCommand,
) (*dto.PoolDTO, error) {
	service, err := uc.serviceRepo.GetBySID(ctx, cmd.ServiceSID)
	if err != nil {
		uc.logger.Errorw("failed to get service", "error", err, "service_sid", cmd.ServiceSID)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return nil, catalog.ErrServiceNotFound
	}

	credential, err := vo.ReconstructAccessCredential(
		vo.AccessType(cmd.AccessType),
		cmd.AccessEmail,
		cmd.AccessSecret,
		cmd.InviteLink,
	)
	if err != nil {
		uc.logger.Errorw("invalid access credential", "error", err, "access_type", cmd.AccessType)
		return nil, fmt.Errorf("invalid access credential: %w", err)
	}

	pool, err := catalog.NewPool(service.ID(), cmd.CatalogPriceCents, cmd.SeatCap, credential)
	if err != nil {
		uc.logger.Errorw("failed to create pool", "error", err)
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := uc.poolRepo.Create(ctx, pool); err != nil {
		uc.logger.Errorw("failed to persist pool", "error", err)
		return nil, fmt.Errorf("failed to persist pool: %w", err)
	}

	if err := uc.availabilityCache.Invalidate(ctx, service.ID()); err != nil {
		uc.logger.Warnw("failed to invalidate availability cache",
			"service_id", service.ID(), "error", err)
	}

	uc.logger.Infow("pool created",
		"sid", pool.SID(),
		"service_sid", service.SID(),
		"seat_cap", pool.SeatCap())
	return dto.ToPoolDTO(pool, service.SID()), nil
}
