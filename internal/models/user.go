package models

import "time"

const (
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

type User struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ProfessionalID *uint         `json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'professional'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
