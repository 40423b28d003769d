package mappers

import (
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
)

type GrantMapper interface {
	ToEntity(model *models.GrantModel) (*grant.Grant, error)
	ToModel(entity *grant.Grant) *models.GrantModel
	ToEntities(models []*models.GrantModel) ([]*grant.Grant, error)
}

type GrantMapperImpl struct{}

func NewGrantMapper() GrantMapper {
	return &GrantMapperImpl{}
}

func (m *GrantMapperImpl) ToEntity(model *models.GrantModel) (*grant.Grant, error) {
	if model == nil {
		return nil, nil
	}

	credential, err := CredentialFromColumns(model.AccessType, model.AccessEmail, model.AccessSecret, model.InviteLink)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct grant credential snapshot: %w", err)
	}

	return grant.ReconstructGrant(
		model.ID,
		model.SID,
		model.UserID,
		model.PoolID,
		model.ServiceID,
		model.StartDate,
		model.ExpiryDate,
		model.DurationDays,
		model.AmountCents,
		model.IsRecurring,
		model.PaymentReference,
		credential,
		model.Active,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *GrantMapperImpl) ToModel(entity *grant.Grant) *models.GrantModel {
	if entity == nil {
		return nil
	}

	accessType, email, secret, inviteLink := credentialToColumns(entity.Credential())

	return &models.GrantModel{
		ID:               entity.ID(),
		SID:              entity.SID(),
		UserID:           entity.UserID(),
		PoolID:           entity.PoolID(),
		ServiceID:        entity.ServiceID(),
		StartDate:        entity.StartDate(),
		ExpiryDate:       entity.ExpiryDate(),
		DurationDays:     entity.DurationDays(),
		AmountCents:      entity.AmountCents(),
		IsRecurring:      entity.IsRecurring(),
		PaymentReference: entity.PaymentReference(),
		AccessType:       accessType,
		AccessEmail:      email,
		AccessSecret:     secret,
		InviteLink:       inviteLink,
		Active:           entity.IsActive(),
		Version:          entity.Version(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (m *GrantMapperImpl) ToEntities(grantModels []*models.GrantModel) ([]*grant.Grant, error) {
	entities := make([]*grant.Grant, 0, len(grantModels))
	for _, model := range grantModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
