package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/mappers"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
	"github.com/seatshare-inc/seatshare/internal/shared/errors"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

// RefundTaskRepositoryImpl implements the grant.RefundTaskRepository interface
type RefundTaskRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RefundTaskMapper
	logger logger.Interface
}

// NewRefundTaskRepository creates a new refund task repository instance
func NewRefundTaskRepository(db *gorm.DB, logger logger.Interface) grant.RefundTaskRepository {
	return &RefundTaskRepositoryImpl{
		db:     db,
		mapper: mappers.NewRefundTaskMapper(),
		logger: logger,
	}
}

// Create persists a new refund task. The unique index on payment_reference
// means a second task for the same payment is a no-op conflict, which keeps
// purchase retries from queueing duplicate refunds.
func (r *RefundTaskRepositoryImpl) Create(ctx context.Context, task *grant.RefundTask) error {
	model := r.mapper.ToModel(task)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("refund task already exists for payment")
		}
		r.logger.Errorw("failed to create refund task",
			"payment_reference", task.PaymentReference(),
			"error", err)
		return fmt.Errorf("failed to create refund task: %w", err)
	}

	if err := task.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set refund task ID", "error", err)
		return fmt.Errorf("failed to set refund task ID: %w", err)
	}

	r.logger.Infow("refund task created",
		"sid", model.SID,
		"payment_reference", model.PaymentReference,
		"amount_cents", model.AmountCents)
	return nil
}

// GetByPaymentReference retrieves a refund task by its payment reference
func (r *RefundTaskRepositoryImpl) GetByPaymentReference(ctx context.Context, paymentReference string) (*grant.RefundTask, error) {
	var model models.RefundTaskModel
	if err := r.db.WithContext(ctx).
		Where("payment_reference = ?", paymentReference).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get refund task",
			"payment_reference", paymentReference,
			"error", err)
		return nil, fmt.Errorf("failed to get refund task: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// FindDue returns pending refund tasks whose next attempt time has passed
func (r *RefundTaskRepositoryImpl) FindDue(ctx context.Context, now time.Time, limit int) ([]*grant.RefundTask, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", string(grant.RefundStatusPending), now).
		Order("next_attempt_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var taskModels []*models.RefundTaskModel
	if err := query.Find(&taskModels).Error; err != nil {
		r.logger.Errorw("failed to find due refund tasks", "error", err)
		return nil, fmt.Errorf("failed to find due refund tasks: %w", err)
	}

	return r.mapper.ToEntities(taskModels)
}

// Update persists changes to an existing refund task
func (r *RefundTaskRepositoryImpl) Update(ctx context.Context, task *grant.RefundTask) error {
	model := r.mapper.ToModel(task)

	result := r.db.WithContext(ctx).Model(&models.RefundTaskModel{}).
		Where("id = ?", task.ID()).
		Updates(map[string]interface{}{
			"status":          model.Status,
			"attempts":        model.Attempts,
			"last_error":      model.LastError,
			"next_attempt_at": model.NextAttemptAt,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update refund task", "id", task.ID(), "error", result.Error)
		return fmt.Errorf("failed to update refund task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("refund task not found")
	}

	return nil
}
