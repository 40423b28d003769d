package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type GetPoolQuery struct {
	SID string
}

type GetPoolUseCase struct {
	serviceRepo catalog.ServiceRepository
	poolRepo    catalog.PoolRepository
	logger      logger.Interface
}

func NewGetPoolUseCase(
	serviceRepo catalog.ServiceRepository,
	poolRepo catalog.PoolRepository,
	logger logger.Interface,
) *GetPoolUseCase {
	return &GetPoolUseCase{
		serviceRepo: serviceRepo,
		poolRepo:    poolRepo,
		logger:      logger,
	}
}

func (uc *GetPoolUseCase) Execute(ctx context.Context, query GetPoolQuery) (*dto.PoolDTO, error) {
	pool, err := uc.poolRepo.GetBySID(ctx, query.SID)
	if err != nil {
		uc.logger.Errorw("failed to get pool", "error", err, "sid", query.SID)
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	if pool == nil {
		return nil, catalog.ErrPoolNotFound
	}

	var serviceSID string
	if service, err := uc.serviceRepo.GetByID(ctx, pool.ServiceID()); err == nil && service != nil {
		serviceSID = service.SID()
	}

	return dto.ToPoolDTO(pool, serviceSID), nil
}
