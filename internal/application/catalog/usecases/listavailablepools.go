package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/catalog/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type ListAvailablePoolsQuery struct {
	ServiceSID string
}

// ListAvailablePoolsUseCase answers the browse question "which pools of this
// service still have seats". The answer is served read-through from the
// availability cache; the purchase path never consults it, so a stale entry
// costs at most a failed pre-check, never an oversold seat.
type ListAvailablePoolsUseCase struct {
	serviceRepo       catalog.ServiceRepository
	poolRepo          catalog.PoolRepository
	availabilityCache cache.PoolAvailabilityCache
	logger            logger.Interface
}

func NewListAvailablePoolsUseCase(
	serviceRepo catalog.ServiceRepository,
	poolRepo catalog.PoolRepository,
	availabilityCache cache.PoolAvailabilityCache,
	logger logger.Interface,
) *ListAvailablePoolsUseCase {
	return &ListAvailablePoolsUseCase{
		serviceRepo:       serviceRepo,
		poolRepo:          poolRepo,
		availabilityCache: availabilityCache,
		logger:            logger,
	}
}

func (uc *ListAvailablePoolsUseCase) Execute(
	ctx context.Context,
	query ListAvailablePoolsQuery,
) ([]*dto.AvailablePoolDTO, error) {
	service, err := uc.serviceRepo.GetBySID(ctx, query.ServiceSID)
	if err != nil {
		uc.logger.Errorw("failed to get service", "error", err, "service_sid", query.ServiceSID)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return nil, catalog.ErrServiceNotFound
	}

	cached, err := uc.availabilityCache.Get(ctx, service.ID())
	if err != nil {
		// Cache trouble degrades to a DB read.
		uc.logger.Warnw("availability cache read failed",
			"service_id", service.ID(), "error", err)
	}
	if cached != nil {
		if cached.NotFound {
			return nil, catalog.ErrServiceNotFound
		}
		return fromCachedPreviews(cached.Pools), nil
	}

	if !service.IsActive() {
		if err := uc.availabilityCache.SetNullMarker(ctx, service.ID()); err != nil {
			uc.logger.Warnw("failed to set availability null marker",
				"service_id", service.ID(), "error", err)
		}
		return nil, catalog.ErrServiceInactive
	}

	pools, err := uc.poolRepo.ListAvailableByServiceID(ctx, service.ID())
	if err != nil {
		uc.logger.Errorw("failed to list available pools",
			"service_id", service.ID(), "error", err)
		return nil, fmt.Errorf("failed to list available pools: %w", err)
	}

	dtos := dto.ToAvailablePoolDTOs(pools)

	if err := uc.availabilityCache.Set(ctx, service.ID(), &cache.CachedAvailability{
		Pools: toCachedPreviews(dtos),
	}); err != nil {
		uc.logger.Warnw("failed to fill availability cache",
			"service_id", service.ID(), "error", err)
	}

	return dtos, nil
}

func toCachedPreviews(dtos []*dto.AvailablePoolDTO) []cache.CachedPoolPreview {
	previews := make([]cache.CachedPoolPreview, 0, len(dtos))
	for _, d := range dtos {
		previews = append(previews, cache.CachedPoolPreview{
			PoolSID:                d.PoolSID,
			CatalogPriceCents:      d.CatalogPriceCents,
			DiscountedMonthlyCents: d.DiscountedMonthlyCents,
			SeatCap:                d.SeatCap,
			SeatsUsed:              d.SeatsUsed,
			SeatsLeft:              d.SeatsLeft,
			AccessType:             d.AccessType,
		})
	}
	return previews
}

func fromCachedPreviews(previews []cache.CachedPoolPreview) []*dto.AvailablePoolDTO {
	dtos := make([]*dto.AvailablePoolDTO, 0, len(previews))
	for _, p := range previews {
		dtos = append(dtos, &dto.AvailablePoolDTO{
			PoolSID:                p.PoolSID,
			CatalogPriceCents:      p.CatalogPriceCents,
			DiscountedMonthlyCents: p.DiscountedMonthlyCents,
			SeatCap:                p.SeatCap,
			SeatsUsed:              p.SeatsUsed,
			SeatsLeft:              p.SeatsLeft,
			AccessType:             p.AccessType,
		})
	}
	return dtos
}
