package mappers

import (
	"fmt"

	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	vo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
)

type BeneficiaryMapper interface {
	ToModel(b *beneficiary.Beneficiary) *models.BeneficiaryModel
	ToDomain(model *models.BeneficiaryModel) (*beneficiary.Beneficiary, error)
	ToDomainList(models []*models.BeneficiaryModel) ([]*beneficiary.Beneficiary, error)
}

type BeneficiaryMapperImpl struct{}

func NewBeneficiaryMapper() BeneficiaryMapper {
	return &BeneficiaryMapperImpl{}
}

func (m *BeneficiaryMapperImpl) ToModel(b *beneficiary.Beneficiary) *models.BeneficiaryModel {
	return &models.BeneficiaryModel{
		ID:               b.ID(),
		NGOID:            b.NGOID(),
		FirstName:        b.FirstName(),
		LastName:         b.LastName(),
		Age:              b.Age(),
		Gender:           b.Gender().String(),
		Phone:            b.Phone(),
		City:             b.City(),
		Pincode:          b.Pincode(),
		NeedCategories:   stringsToJSON(b.NeedCategories()),
		HealthConditions: stringsToJSON(b.HealthConditions()),
		Priority:         b.Priority().String(),
		IsActive:         b.IsActive(),
		LastServedAt:     timePtrToMillis(b.LastServedAt()),
		Notes:            b.Notes(),
		CreatedAt:        b.CreatedAt().UnixMilli(),
		UpdatedAt:        b.UpdatedAt().UnixMilli(),
	}
}

func (m *BeneficiaryMapperImpl) ToDomain(model *models.BeneficiaryModel) (*beneficiary.Beneficiary, error) {
	if model == nil {
		return nil, nil
	}
	needs, err := jsonToStrings(model.NeedCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to decode need categories of beneficiary %s: %w", model.ID, err)
	}
	health, err := jsonToStrings(model.HealthConditions)
	if err != nil {
		return nil, fmt.Errorf("failed to decode health conditions of beneficiary %s: %w", model.ID, err)
	}

	return beneficiary.ReconstructBeneficiary(
		model.ID,
		model.NGOID,
		model.FirstName,
		model.LastName,
		model.Age,
		vo.Gender(model.Gender),
		model.Phone,
		model.City,
		model.Pincode,
		needs,
		health,
		vo.PriorityTier(model.Priority),
		model.IsActive,
		millisPtrToTime(model.LastServedAt),
		model.Notes,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *BeneficiaryMapperImpl) ToDomainList(list []*models.BeneficiaryModel) ([]*beneficiary.Beneficiary, error) {
	out := make([]*beneficiary.Beneficiary, 0, len(list))
	for _, model := range list {
		b, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
