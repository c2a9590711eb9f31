package models

import "time"

// Trilha de ações do admin e do profissional. Gravada de forma assíncrona
// pelo audit.Dispatcher, nunca pelo caminho da requisição.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint  `gorm:"index:idx_audit_professional_created,priority:1;not null" json:"professional_id"`
	UserID         *uint `json:"user_id,omitempty"`

	Action   string `gorm:"size:50;not null;index" json:"action"`
	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id,omitempty"`

	// JSON serializado; nil quando o evento não tem detalhes
	Metadata *string `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_professional_created,priority:2" json:"created_at"`
}
