package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `gorm:"index:idx_appointments_professional_date,priority:1" json:"professional_id"`
	ClientID       uint `gorm:"index" json:"client_id"`
	ServiceID      uint `json:"service_id"`

	Date        string `gorm:"size:10;not null;index:idx_appointments_professional_date,priority:2" json:"date"`
	Time        string `gorm:"size:5;not null" json:"time"`
	DurationMin int    `gorm:"not null" json:"duration"`

	Status string  `gorm:"size:20;default:'confirmed'" json:"status"`
	Price  float64 `json:"price"`

	ServiceName string `gorm:"size:100" json:"service_name"`
	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientEmail string `gorm:"size:100;index" json:"client_email"`
	ClientPhone string `gorm:"size:20;index" json:"client_phone"`

	Notes        string     `gorm:"size:255" json:"notes"`
	CancelReason string     `gorm:"size:255" json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
