package models

import "gorm.io/datatypes"

type BeneficiaryModel struct {
	ID               string         `gorm:"primaryKey;size:36"`
	NGOID            string         `gorm:"column:ngo_id;size:36;not null;index:idx_beneficiaries_roster,priority:1"`
	FirstName        string         `gorm:"size:100;not null"`
	LastName         string         `gorm:"size:100"`
	Age              int            `gorm:"not null;default:0"`
	Gender           string         `gorm:"size:20"`
	Phone            string         `gorm:"size:30"`
	City             string         `gorm:"size:100;index"`
	Pincode          string         `gorm:"size:20"`
	NeedCategories   datatypes.JSON `gorm:"column:need_categories"`
	HealthConditions datatypes.JSON `gorm:"column:health_conditions"`
	Priority         string         `gorm:"size:20;not null;default:medium;index:idx_beneficiaries_roster,priority:3"`
	IsActive         bool           `gorm:"not null;index:idx_beneficiaries_roster,priority:2"`
	LastServedAt     *int64         `gorm:"index"`
	Notes            string         `gorm:"type:text"`
	CreatedAt        int64          `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64          `gorm:"autoUpdateTime:milli;not null"`
}

func (BeneficiaryModel) TableName() string {
	return "beneficiaries"
}
