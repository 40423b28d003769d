package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/mappers"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
	"github.com/seatshare-inc/seatshare/internal/shared/errors"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

// GrantRepositoryImpl implements the grant.Repository interface.
// It owns the seat reservation transaction and is the only writer of a
// pool's seat_count column.
type GrantRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.GrantMapper
	logger logger.Interface
}

// NewGrantRepository creates a new grant repository instance
func NewGrantRepository(db *gorm.DB, logger logger.Interface) grant.Repository {
	return &GrantRepositoryImpl{
		db:     db,
		mapper: mappers.NewGrantMapper(),
		logger: logger,
	}
}

// GetByID retrieves a grant by its database ID
func (r *GrantRepositoryImpl) GetByID(ctx context.Context, grantID uint) (*grant.Grant, error) {
	var model models.GrantModel
	if err := r.db.WithContext(ctx).First(&model, grantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get grant", "id", grantID, "error", err)
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a grant by its Stripe-style ID
func (r *GrantRepositoryImpl) GetBySID(ctx context.Context, sid string) (*grant.Grant, error) {
	var model models.GrantModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get grant by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByPaymentReference retrieves a grant by its payment reference.
// The unique index on payment_reference makes this the idempotency lookup
// for purchase retries.
func (r *GrantRepositoryImpl) GetByPaymentReference(ctx context.Context, paymentReference string) (*grant.Grant, error) {
	var model models.GrantModel
	if err := r.db.WithContext(ctx).
		Where("payment_reference = ?", paymentReference).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get grant by payment reference",
			"payment_reference", paymentReference,
			"error", err)
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByUserID returns all grants belonging to a user, newest first
func (r *GrantRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*grant.Grant, error) {
	var grantModels []*models.GrantModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&grantModels).Error; err != nil {
		r.logger.Errorw("failed to list grants", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	return r.mapper.ToEntities(grantModels)
}

// ReserveSeatAndCreateGrant atomically reserves a seat and records the grant.
//
// The pool row is locked with SELECT ... FOR UPDATE so concurrent purchases
// on the same pool serialize: each transaction re-reads seat_count under the
// lock, and the capacity check plus increment plus grant insert commit
// together or not at all. The credential snapshot is copied from the locked
// row, never from a cached read.
//
// A retry whose payment reference already has a committed grant returns that
// grant unchanged. The unique index on payment_reference backstops the
// fast-path lookup against races between two retries of the same payment.
func (r *GrantRepositoryImpl) ReserveSeatAndCreateGrant(ctx context.Context, params grant.ReserveSeatParams) (*grant.Grant, error) {
	var created *grant.Grant

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.GrantModel
		err := tx.Where("payment_reference = ?", params.PaymentReference).First(&existing).Error
		if err == nil {
			entity, mapErr := r.mapper.ToEntity(&existing)
			if mapErr != nil {
				return mapErr
			}
			created = entity
			r.logger.Infow("duplicate reservation ignored, returning committed grant",
				"payment_reference", params.PaymentReference,
				"grant_sid", existing.SID)
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check payment reference: %w", err)
		}

		var poolModel models.PoolModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&poolModel, params.PoolID).Error
		if err == gorm.ErrRecordNotFound {
			return catalog.ErrPoolNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock pool: %w", err)
		}

		if !poolModel.Active {
			return catalog.ErrPoolInactive
		}
		if poolModel.SeatCount >= poolModel.SeatCap {
			return catalog.ErrPoolFull
		}

		credential, err := mappers.CredentialFromColumns(
			poolModel.AccessType,
			poolModel.AccessEmail,
			poolModel.AccessSecret,
			poolModel.InviteLink,
		)
		if err != nil {
			return fmt.Errorf("failed to read locked pool credential: %w", err)
		}

		entity, err := grant.NewGrant(
			params.UserID,
			params.PoolID,
			poolModel.ServiceID,
			params.StartDate,
			params.ExpiryDate,
			params.DurationDays,
			params.AmountCents,
			params.IsRecurring,
			params.PaymentReference,
			credential,
		)
		if err != nil {
			return fmt.Errorf("failed to build grant: %w", err)
		}

		grantModel := r.mapper.ToModel(entity)
		if err := tx.Create(grantModel).Error; err != nil {
			if errors.IsDuplicateError(err) {
				// Lost a race between two retries of the same payment.
				var winner models.GrantModel
				if lookupErr := tx.Where("payment_reference = ?", params.PaymentReference).
					First(&winner).Error; lookupErr != nil {
					return fmt.Errorf("failed to load committed grant after duplicate: %w", lookupErr)
				}
				winnerEntity, mapErr := r.mapper.ToEntity(&winner)
				if mapErr != nil {
					return mapErr
				}
				created = winnerEntity
				return nil
			}
			return fmt.Errorf("failed to create grant: %w", err)
		}

		if err := entity.SetID(grantModel.ID); err != nil {
			return fmt.Errorf("failed to set grant ID: %w", err)
		}

		if err := tx.Model(&models.PoolModel{}).
			Where("id = ?", poolModel.ID).
			Update("seat_count", gorm.Expr("seat_count + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment seat count: %w", err)
		}

		created = entity
		r.logger.Infow("seat reserved",
			"grant_sid", entity.SID(),
			"pool_id", poolModel.ID,
			"user_id", params.UserID,
			"seats_used", poolModel.SeatCount+1,
			"seat_cap", poolModel.SeatCap)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// FindExpired returns active grants whose expiry date has passed
func (r *GrantRepositoryImpl) FindExpired(ctx context.Context, now time.Time, limit int) ([]*grant.Grant, error) {
	query := r.db.WithContext(ctx).
		Where("active = ? AND expiry_date < ?", true, now).
		Order("expiry_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var grantModels []*models.GrantModel
	if err := query.Find(&grantModels).Error; err != nil {
		r.logger.Errorw("failed to find expired grants", "error", err)
		return nil, fmt.Errorf("failed to find expired grants: %w", err)
	}

	return r.mapper.ToEntities(grantModels)
}

// Update persists changes to an existing grant. Only mutable columns are
// written; the purchase record itself is immutable.
func (r *GrantRepositoryImpl) Update(ctx context.Context, g *grant.Grant) error {
	model := r.mapper.ToModel(g)

	result := r.db.WithContext(ctx).Model(&models.GrantModel{}).
		Where("id = ?", g.ID()).
		Updates(map[string]interface{}{
			"active":     model.Active,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update grant", "id", g.ID(), "error", result.Error)
		return fmt.Errorf("failed to update grant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("grant not found")
	}

	return nil
}

// DeactivateAndReleaseSeat flips the grant inactive and frees its seat in one
// transaction. The WHERE active = true guard keeps concurrent sweeps from
// decrementing twice for the same grant.
func (r *GrantRepositoryImpl) DeactivateAndReleaseSeat(ctx context.Context, g *grant.Grant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.GrantModel{}).
			Where("id = ? AND active = ?", g.ID(), true).
			Updates(map[string]interface{}{
				"active":     false,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to deactivate grant: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Already deactivated by another sweep run.
			return nil
		}

		if err := tx.Model(&models.PoolModel{}).
			Where("id = ? AND seat_count > 0", g.PoolID()).
			Update("seat_count", gorm.Expr("seat_count - 1")).Error; err != nil {
			return fmt.Errorf("failed to release seat: %w", err)
		}

		r.logger.Infow("grant deactivated and seat released",
			"grant_sid", g.SID(),
			"pool_id", g.PoolID())
		return nil
	})
}
