package models

type NGOModel struct {
	ID                 string `gorm:"primaryKey;size:36"`
	Name               string `gorm:"size:200;not null"`
	RegistrationNumber string `gorm:"uniqueIndex;size:100;not null"`
	City               string `gorm:"size:100;index"`
	State              string `gorm:"size:100"`
	IsVerified         bool   `gorm:"not null;default:false"`
	IsActive           bool   `gorm:"not null"`
	Capacity           int    `gorm:"not null;default:0"`
	CreatedAt          int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt          int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (NGOModel) TableName() string {
	return "ngos"
}
