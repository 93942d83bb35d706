package mappers

import (
	"github.com/aidlink/aidlink/internal/domain/donation"
	vo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
)

type DonationMapper interface {
	ToModel(d *donation.Donation) *models.DonationModel
	ToDomain(model *models.DonationModel) (*donation.Donation, error)
}

type DonationMapperImpl struct{}

func NewDonationMapper() DonationMapper {
	return &DonationMapperImpl{}
}

func (m *DonationMapperImpl) ToModel(d *donation.Donation) *models.DonationModel {
	return &models.DonationModel{
		ID:         d.ID(),
		NGOID:      d.NGOID(),
		DonorName:  d.DonorName(),
		ItemType:   d.ItemType(),
		ItemName:   d.ItemName(),
		Quantity:   d.Quantity(),
		Unit:       d.Unit(),
		ExpiresAt:  timePtrToMillis(d.ExpiresAt()),
		Status:     d.Status().String(),
		ReceivedAt: timePtrToMillis(d.ReceivedAt()),
		Notes:      d.Notes(),
		CreatedAt:  d.CreatedAt().UnixMilli(),
		UpdatedAt:  d.UpdatedAt().UnixMilli(),
	}
}

func (m *DonationMapperImpl) ToDomain(model *models.DonationModel) (*donation.Donation, error) {
	if model == nil {
		return nil, nil
	}
	return donation.ReconstructDonation(
		model.ID,
		model.NGOID,
		model.DonorName,
		model.ItemType,
		model.ItemName,
		model.Quantity,
		model.Unit,
		millisPtrToTime(model.ExpiresAt),
		vo.DonationStatus(model.Status),
		millisPtrToTime(model.ReceivedAt),
		model.Notes,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
