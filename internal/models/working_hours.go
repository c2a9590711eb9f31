package models

import "time"

type WorkingHours struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index" json:"professional_id"`

	Weekday     int  `json:"weekday"`
	IsAvailable bool `json:"is_available"`

	Periods []WorkingPeriod `gorm:"constraint:OnDelete:CASCADE;" json:"periods"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkingPeriod struct {
	ID             uint `gorm:"primaryKey" json:"-"`
	WorkingHoursID uint `gorm:"index" json:"-"`

	Position  int    `json:"-"`
	StartTime string `gorm:"size:5" json:"start"`
	EndTime   string `gorm:"size:5" json:"end"`
}
