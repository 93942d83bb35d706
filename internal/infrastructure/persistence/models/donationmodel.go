package models

type DonationModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	NGOID      string `gorm:"column:ngo_id;size:36;not null;index"`
	DonorName  string `gorm:"size:200;not null"`
	ItemType   string `gorm:"size:50;not null;index"`
	ItemName   string `gorm:"size:200"`
	Quantity   int    `gorm:"not null"`
	Unit       string `gorm:"size:20"`
	ExpiresAt  *int64 `gorm:"index"`
	Status     string `gorm:"size:20;not null;default:pending;index"`
	ReceivedAt *int64
	Notes      string `gorm:"type:text"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt  int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (DonationModel) TableName() string {
	return "donations"
}
