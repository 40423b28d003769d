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

// PoolRepositoryImpl implements the catalog.PoolRepository interface.
// Seat counts are out of scope here: the grant repository owns the seat
// reservation transaction and is the only writer of seat_count.
type PoolRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PoolMapper
	logger logger.Interface
}

// NewPoolRepository creates a new pool repository instance
func NewPoolRepository(db *gorm.DB, logger logger.Interface) catalog.PoolRepository {
	return &PoolRepositoryImpl{
		db:     db,
		mapper: mappers.NewPoolMapper(),
		logger: logger,
	}
}

// Create persists a new pool
func (r *PoolRepositoryImpl) Create(ctx context.Context, pool *catalog.Pool) error {
	model := r.mapper.ToModel(pool)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("pool already exists")
		}
		r.logger.Errorw("failed to create pool", "service_id", pool.ServiceID(), "error", err)
		return fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set pool ID", "error", err)
		return fmt.Errorf("failed to set pool ID: %w", err)
	}

	r.logger.Infow("pool created",
		"id", model.ID,
		"sid", model.SID,
		"service_id", model.ServiceID,
		"seat_cap", model.SeatCap)
	return nil
}

// GetByID retrieves a pool by its database ID
func (r *PoolRepositoryImpl) GetByID(ctx context.Context, poolID uint) (*catalog.Pool, error) {
	var model models.PoolModel
	if err := r.db.WithContext(ctx).First(&model, poolID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get pool", "id", poolID, "error", err)
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a pool by its Stripe-style ID
func (r *PoolRepositoryImpl) GetBySID(ctx context.Context, sid string) (*catalog.Pool, error) {
	var model models.PoolModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get pool by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByServiceID returns all pools under a service regardless of state
func (r *PoolRepositoryImpl) ListByServiceID(ctx context.Context, serviceID uint) ([]*catalog.Pool, error) {
	var poolModels []*models.PoolModel
	if err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("id ASC").
		Find(&poolModels).Error; err != nil {
		r.logger.Errorw("failed to list pools", "service_id", serviceID, "error", err)
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}

	return r.mapper.ToEntities(poolModels)
}

// ListAvailableByServiceID returns active pools with spare capacity.
// A pool sitting exactly at its cap is excluded.
func (r *PoolRepositoryImpl) ListAvailableByServiceID(ctx context.Context, serviceID uint) ([]*catalog.Pool, error) {
	var poolModels []*models.PoolModel
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND active = ? AND seat_count < seat_cap", serviceID, true).
		Order("id ASC").
		Find(&poolModels).Error; err != nil {
		r.logger.Errorw("failed to list available pools", "service_id", serviceID, "error", err)
		return nil, fmt.Errorf("failed to list available pools: %w", err)
	}

	return r.mapper.ToEntities(poolModels)
}

// Update persists changes to an existing pool. seat_count is deliberately
// absent from the column list.
func (r *PoolRepositoryImpl) Update(ctx context.Context, pool *catalog.Pool) error {
	model := r.mapper.ToModel(pool)

	result := r.db.WithContext(ctx).Model(&models.PoolModel{}).
		Where("id = ?", pool.ID()).
		Updates(map[string]interface{}{
			"catalog_price_cents": model.CatalogPriceCents,
			"seat_cap":            model.SeatCap,
			"access_type":         model.AccessType,
			"access_email":        model.AccessEmail,
			"access_secret":       model.AccessSecret,
			"invite_link":         model.InviteLink,
			"active":              model.Active,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update pool", "id", pool.ID(), "error", result.Error)
		return fmt.Errorf("failed to update pool: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("pool not found")
	}

	r.logger.Infow("pool updated", "id", pool.ID(), "sid", pool.SID())
	return nil
}

// Delete removes a pool and its grants in one transaction
func (r *PoolRepositoryImpl) Delete(ctx context.Context, poolID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pool_id = ?", poolID).Delete(&models.GrantModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete grants: %w", err)
		}

		result := tx.Delete(&models.PoolModel{}, poolID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete pool: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("pool not found")
		}
		return nil
	})
	if err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		r.logger.Errorw("failed to delete pool", "id", poolID, "error", err)
		return err
	}

	r.logger.Infow("pool deleted with grants", "id", poolID)
	return nil
}
