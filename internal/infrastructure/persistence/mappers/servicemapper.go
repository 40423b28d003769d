package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
)

type ServiceMapper interface {
	ToEntity(model *models.ServiceModel) (*catalog.Service, error)
	ToModel(entity *catalog.Service) *models.ServiceModel
	ToEntities(models []*models.ServiceModel) ([]*catalog.Service, error)
}

type ServiceMapperImpl struct{}

func NewServiceMapper() ServiceMapper {
	return &ServiceMapperImpl{}
}

func (m *ServiceMapperImpl) ToEntity(model *models.ServiceModel) (*catalog.Service, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal service metadata: %w", err)
		}
	}

	return catalog.ReconstructService(
		model.ID,
		model.SID,
		model.Name,
		model.Slug,
		model.IconURL,
		model.SortOrder,
		model.Active,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ServiceMapperImpl) ToModel(entity *catalog.Service) *models.ServiceModel {
	if entity == nil {
		return nil
	}

	var metadataJSON datatypes.JSON
	if metadata := entity.Metadata(); len(metadata) > 0 {
		// Marshal of a decoded JSON map cannot fail.
		data, _ := json.Marshal(metadata)
		metadataJSON = data
	}

	return &models.ServiceModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		Name:      entity.Name(),
		Slug:      entity.Slug(),
		IconURL:   entity.IconURL(),
		SortOrder: entity.SortOrder(),
		Active:    entity.IsActive(),
		Metadata:  metadataJSON,
		Version:   entity.Version(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *ServiceMapperImpl) ToEntities(serviceModels []*models.ServiceModel) ([]*catalog.Service, error) {
	entities := make([]*catalog.Service, 0, len(serviceModels))
	for _, model := range serviceModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
