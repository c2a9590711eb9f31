package models

import "time"

const (
	ProfessionalPending  = "pending"
	ProfessionalApproved = "approved"
	ProfessionalRejected = "rejected"
	ProfessionalBlocked  = "blocked"
)

// Profissional com página pública em /:slug
type Professional struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Slug       string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Email      string `gorm:"size:100" json:"email"`
	Phone      string `gorm:"size:20" json:"phone"`
	Profession string `gorm:"size:100" json:"profession"`
	Bio        string `gorm:"type:text" json:"bio"`

	AvatarURL string `gorm:"size:255" json:"avatar_url"`
	CoverURL  string `gorm:"size:255" json:"cover_url"`

	Street       string `gorm:"size:150" json:"street"`
	Number       string `gorm:"size:20" json:"number"`
	Complement   string `gorm:"size:100" json:"complement"`
	Neighborhood string `gorm:"size:100" json:"neighborhood"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:2" json:"state"`
	ZipCode      string `gorm:"size:10" json:"zip_code"`

	Status          string `gorm:"size:20;default:'pending';index" json:"status"`
	RejectionReason string `gorm:"size:255" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) IsPublic() bool {
	return p.Status == ProfessionalApproved
}
