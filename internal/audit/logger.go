package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/models"
)

// Writer persists one audit event.
type Writer interface {
	Log(ctx context.Context, ev Event) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON *string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			s := string(b)
			metaJSON = &s
		}
	}

	row := models.AuditLog{
		ProfessionalID: ev.ProfessionalID,
		UserID:         ev.UserID,
		Action:         ev.Action,
		Entity:         ev.Entity,
		EntityID:       ev.EntityID,
		Metadata:       metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
