package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/mappers"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
	"github.com/seatshare-inc/seatshare/internal/shared/errors"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

// ServiceRepositoryImpl implements the catalog.ServiceRepository interface
type ServiceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ServiceMapper
	logger logger.Interface
}

// NewServiceRepository creates a new service repository instance
func NewServiceRepository(db *gorm.DB, logger logger.Interface) catalog.ServiceRepository {
	return &ServiceRepositoryImpl{
		db:     db,
		mapper: mappers.NewServiceMapper(),
		logger: logger,
	}
}

// Create persists a new catalog service
func (r *ServiceRepositoryImpl) Create(ctx context.Context, service *catalog.Service) error {
	model := r.mapper.ToModel(service)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("service slug already exists")
		}
		r.logger.Errorw("failed to create service", "slug", service.Slug(), "error", err)
		return fmt.Errorf("failed to create service: %w", err)
	}

	if err := service.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set service ID", "error", err)
		return fmt.Errorf("failed to set service ID: %w", err)
	}

	r.logger.Infow("service created", "id", model.ID, "sid", model.SID, "slug", model.Slug)
	return nil
}

// GetByID retrieves a service by its database ID
func (r *ServiceRepositoryImpl) GetByID(ctx context.Context, serviceID uint) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get service", "id", serviceID, "error", err)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a service by its Stripe-style ID
func (r *ServiceRepositoryImpl) GetBySID(ctx context.Context, sid string) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get service by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySlug retrieves a service by its URL slug
func (r *ServiceRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get service by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// List returns services ordered by sort order then name
func (r *ServiceRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]*catalog.Service, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var serviceModels []*models.ServiceModel
	if err := query.Order("sort_order ASC, name ASC").Find(&serviceModels).Error; err != nil {
		r.logger.Errorw("failed to list services", "error", err)
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return r.mapper.ToEntities(serviceModels)
}

// Update persists changes to an existing service
func (r *ServiceRepositoryImpl) Update(ctx context.Context, service *catalog.Service) error {
	model := r.mapper.ToModel(service)

	result := r.db.WithContext(ctx).Model(&models.ServiceModel{}).
		Where("id = ?", service.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"slug":       model.Slug,
			"icon_url":   model.IconURL,
			"sort_order": model.SortOrder,
			"active":     model.Active,
			"metadata":   model.Metadata,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("service slug already exists")
		}
		r.logger.Errorw("failed to update service", "id", service.ID(), "error", result.Error)
		return fmt.Errorf("failed to update service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("service not found")
	}

	r.logger.Infow("service updated", "id", service.ID(), "sid", service.SID())
	return nil
}

// Delete removes the service and cascades to its pools and their grants in a
// single transaction. Grants are purchase history elsewhere; a catalog-level
// delete is the one path that removes them.
func (r *ServiceRepositoryImpl) Delete(ctx context.Context, serviceID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poolIDs []uint
		if err := tx.Model(&models.PoolModel{}).
			Where("service_id = ?", serviceID).
			Pluck("id", &poolIDs).Error; err != nil {
			return fmt.Errorf("failed to collect pool IDs: %w", err)
		}

		if len(poolIDs) > 0 {
			if err := tx.Where("pool_id IN ?", poolIDs).Delete(&models.GrantModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete grants: %w", err)
			}
			if err := tx.Where("service_id = ?", serviceID).Delete(&models.PoolModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete pools: %w", err)
			}
		}

		result := tx.Delete(&models.ServiceModel{}, serviceID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete service: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("service not found")
		}
		return nil
	})
	if err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		r.logger.Errorw("failed to delete service", "id", serviceID, "error", err)
		return err
	}

	r.logger.Infow("service deleted with pools and grants", "id", serviceID)
	return nil
}
