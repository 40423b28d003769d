package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type CreateServiceCommand struct {
	Name     string
	Slug     string
	IconURL  string
	Metadata map[string]interface{}
}

type CreateServiceUseCase struct {
	serviceRepo catalog.ServiceRepository
	logger      logger.Interface
}

func NewCreateServiceUseCase(
	serviceRepo catalog.ServiceRepository,
	logger logger.Interface,
) *CreateServiceUseCase {
	return &CreateServiceUseCase{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

func (uc *CreateServiceUseCase) Execute(
	ctx context.Context,
	cmd CreateServiceCommand,
) (*dto.ServiceDTO, error) {
	existing, err := uc.serviceRepo.GetBySlug(ctx, cmd.Slug)
	if err != nil {
		uc.logger.Errorw("failed to check slug existence", "error", err, "slug", cmd.Slug)
		return nil, fmt.Errorf("failed to check slug existence: %w", err)
	}
	if existing != nil {
		return nil, catalog.ErrServiceSlugTaken
	}

	service, err := catalog.NewService(cmd.Name, cmd.Slug, cmd.IconURL)
	if err != nil {
		uc.logger.Errorw("failed to create service", "error", err)
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	if len(cmd.Metadata) > 0 {
		service.UpdateMetadata(cmd.Metadata)
	}

	if err := uc.serviceRepo.Create(ctx, service); err != nil {
		uc.logger.Errorw("failed to persist service", "error", err)
		return nil, fmt.Errorf("failed to persist service: %w", err)
	}

	uc.logger.Infow("service created", "sid", service.SID(), "slug", service.Slug())
	return dto.ToServiceDTO(service), nil
}
