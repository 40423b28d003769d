package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type ListServicesQuery struct {
	ActiveOnly bool
}

type ListServicesUseCase struct {
	serviceRepo catalog.ServiceRepository
	logger      logger.Interface
}

func NewListServicesUseCase(
	serviceRepo catalog.ServiceRepository,
	logger logger.Interface,
) *ListServicesUseCase {
	return &ListServicesUseCase{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

func (uc *ListServicesUseCase) Execute(
	ctx context.Context,
	query ListServicesQuery,
) ([]*dto.ServiceDTO, error) {
	services, err := uc.serviceRepo.List(ctx, query.ActiveOnly)
	if err != nil {
		uc.logger.Errorw("failed to list services", "error", err)
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return dto.ToServiceDTOs(services), nil
}
