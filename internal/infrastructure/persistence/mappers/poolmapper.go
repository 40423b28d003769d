package mappers

import (
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
)

type PoolMapper interface {
	ToEntity(model *models.PoolModel) (*catalog.Pool, error)
	ToModel(entity *catalog.Pool) *models.PoolModel
	ToEntities(models []*models.PoolModel) ([]*catalog.Pool, error)
}

type PoolMapperImpl struct{}

func NewPoolMapper() PoolMapper {
	return &PoolMapperImpl{}
}

func (m *PoolMapperImpl) ToEntity(model *models.PoolModel) (*catalog.Pool, error) {
	if model == nil {
		return nil, nil
	}

	credential, err := CredentialFromColumns(model.AccessType, model.AccessEmail, model.AccessSecret, model.InviteLink)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct pool credential: %w", err)
	}

	return catalog.ReconstructPool(
		model.ID,
		model.SID,
		model.ServiceID,
		model.CatalogPriceCents,
		model.SeatCap,
		model.SeatCount,
		credential,
		model.Active,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *PoolMapperImpl) ToModel(entity *catalog.Pool) *models.PoolModel {
	if entity == nil {
		return nil
	}

	accessType, email, secret, inviteLink := credentialToColumns(entity.Credential())

	return &models.PoolModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		ServiceID:         entity.ServiceID(),
		CatalogPriceCents: entity.CatalogPriceCents(),
		SeatCap:           entity.SeatCap(),
		SeatCount:         entity.SeatCount(),
		AccessType:        accessType,
		AccessEmail:       email,
		AccessSecret:      secret,
		InviteLink:        inviteLink,
		Active:            entity.IsActive(),
		Version:           entity.Version(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}

func (m *PoolMapperImpl) ToEntities(poolModels []*models.PoolModel) ([]*catalog.Pool, error) {
	entities := make([]*catalog.Pool, 0, len(poolModels))
	for _, model := range poolModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
