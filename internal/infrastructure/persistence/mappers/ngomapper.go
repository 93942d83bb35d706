package mappers

import (
	"github.com/aidlink/aidlink/internal/domain/ngo"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
)

type NGOMapper interface {
	ToModel(n *ngo.NGO) *models.NGOModel
	ToDomain(model *models.NGOModel) *ngo.NGO
}

type NGOMapperImpl struct{}

func NewNGOMapper() NGOMapper {
	return &NGOMapperImpl{}
}

func (m *NGOMapperImpl) ToModel(n *ngo.NGO) *models.NGOModel {
	return &models.NGOModel{
		ID:                 n.ID(),
		Name:               n.Name(),
		RegistrationNumber: n.RegistrationNumber(),
		City:               n.City(),
		State:              n.State(),
		IsVerified:         n.IsVerified(),
		IsActive:           n.IsActive(),
		Capacity:           n.Capacity(),
		CreatedAt:          n.CreatedAt().UnixMilli(),
		UpdatedAt:          n.UpdatedAt().UnixMilli(),
	}
}

func (m *NGOMapperImpl) ToDomain(model *models.NGOModel) *ngo.NGO {
	return ngo.ReconstructNGO(
		model.ID,
		model.Name,
		model.RegistrationNumber,
		model.City,
		model.State,
		model.IsVerified,
		model.IsActive,
		model.Capacity,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
