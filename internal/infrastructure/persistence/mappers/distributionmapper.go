package mappers

import (
	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
)

type DistributionMapper interface {
	ToModel(r *distribution.Record) *models.DistributionModel
	ToDomain(model *models.DistributionModel) *distribution.Record
}

type DistributionMapperImpl struct{}

func NewDistributionMapper() DistributionMapper {
	return &DistributionMapperImpl{}
}

func (m *DistributionMapperImpl) ToModel(r *distribution.Record) *models.DistributionModel {
	return &models.DistributionModel{
		ID:            r.ID(),
		BatchID:       r.BatchID(),
		BeneficiaryID: r.BeneficiaryID(),
		NGOID:         r.NGOID(),
		DonationID:    r.DonationID(),
		ItemType:      r.ItemType(),
		ItemName:      r.ItemName(),
		Quantity:      r.Quantity(),
		Unit:          r.Unit(),
		DistributedAt: r.DistributedAt().UnixMilli(),
		DistributedBy: r.DistributedBy(),
		PriorityScore: r.PriorityScore(),
		FairnessScore: r.FairnessScore(),
		Notes:         r.Notes(),
		CreatedAt:     r.CreatedAt().UnixMilli(),
	}
}

func (m *DistributionMapperImpl) ToDomain(model *models.DistributionModel) *distribution.Record {
	return distribution.ReconstructRecord(distribution.RecordParams{
		ID:            model.ID,
		BatchID:       model.BatchID,
		BeneficiaryID: model.BeneficiaryID,
		NGOID:         model.NGOID,
		DonationID:    model.DonationID,
		ItemType:      model.ItemType,
		ItemName:      model.ItemName,
		Quantity:      model.Quantity,
		Unit:          model.Unit,
		DistributedAt: millisToTime(model.DistributedAt),
		DistributedBy: model.DistributedBy,
		PriorityScore: model.PriorityScore,
		FairnessScore: model.FairnessScore,
		Notes:         model.Notes,
	}, millisToTime(model.CreatedAt))
}
