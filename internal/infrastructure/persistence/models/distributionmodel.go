package models

// DistributionModel rows are append-only. Relationships to beneficiaries,
// NGOs and donations are checked by the execute use case inside the commit
// transaction, not by foreign keys.
type DistributionModel struct {
	ID            string  `gorm:"primaryKey;size:36"`
	BatchID       string  `gorm:"size:64;index"`
	BeneficiaryID string  `gorm:"size:36;not null;index"`
	NGOID         string  `gorm:"column:ngo_id;size:36;not null;index:idx_distributions_ngo_time,priority:1"`
	DonationID    *string `gorm:"size:36;index"`
	ItemType      string  `gorm:"size:50;not null"`
	ItemName      string  `gorm:"size:200"`
	Quantity      int     `gorm:"not null"`
	Unit          string  `gorm:"size:20"`
	DistributedAt int64   `gorm:"not null;index:idx_distributions_ngo_time,priority:2"`
	DistributedBy string  `gorm:"size:100;not null"`
	PriorityScore float64 `gorm:"not null;default:0"`
	FairnessScore float64 `gorm:"not null;default:0"`
	Notes         string  `gorm:"type:text"`
	CreatedAt     int64   `gorm:"autoCreateTime:milli;not null"`
}

func (DistributionModel) TableName() string {
	return "distributions"
}
