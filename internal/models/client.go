package models

import "time"

const (
	ClientActive  = "active"
	ClientBlocked = "blocked"
)

// Cliente sem login, identificado por email (ou telefone)
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100;index" json:"email"`

	Status            string `gorm:"size:20;default:'active'" json:"status"`
	TotalAppointments int    `gorm:"default:0" json:"total_appointments"`
	LastAppointment   string `gorm:"size:10" json:"last_appointment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientProfessional registra com quais profissionais o cliente já agendou.
type ClientProfessional struct {
	ClientID       uint      `gorm:"primaryKey" json:"client_id"`
	ProfessionalID uint      `gorm:"primaryKey" json:"professional_id"`
	CreatedAt      time.Time `json:"created_at"`
}
