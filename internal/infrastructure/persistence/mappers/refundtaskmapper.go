package mappers

import (
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
)

type RefundTaskMapper interface {
	ToEntity(model *models.RefundTaskModel) (*grant.RefundTask, error)
	ToModel(entity *grant.RefundTask) *models.RefundTaskModel
	ToEntities(models []*models.RefundTaskModel) ([]*grant.RefundTask, error)
}

type RefundTaskMapperImpl struct{}

func NewRefundTaskMapper() RefundTaskMapper {
	return &RefundTaskMapperImpl{}
}

func (m *RefundTaskMapperImpl) ToEntity(model *models.RefundTaskModel) (*grant.RefundTask, error) {
	if model == nil {
		return nil, nil
	}

	return grant.ReconstructRefundTask(
		model.ID,
		model.SID,
		model.PaymentReference,
		model.AmountCents,
		model.Reason,
		grant.RefundStatus(model.Status),
		model.Attempts,
		deref(model.LastError),
		model.NextAttemptAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *RefundTaskMapperImpl) ToModel(entity *grant.RefundTask) *models.RefundTaskModel {
	if entity == nil {
		return nil
	}

	var lastError *string
	if entity.LastError() != "" {
		e := entity.LastError()
		lastError = &e
	}

	return &models.RefundTaskModel{
		ID:               entity.ID(),
		SID:              entity.SID(),
		PaymentReference: entity.PaymentReference(),
		AmountCents:      entity.AmountCents(),
		Reason:           entity.Reason(),
		Status:           string(entity.Status()),
		Attempts:         entity.Attempts(),
		LastError:        lastError,
		NextAttemptAt:    entity.NextAttemptAt(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (m *RefundTaskMapperImpl) ToEntities(taskModels []*models.RefundTaskModel) ([]*grant.RefundTask, error) {
	entities := make([]*grant.RefundTask, 0, len(taskModels))
	for _, model := range taskModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
