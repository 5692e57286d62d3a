package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Logger writes audit events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		ProfessionalID: ev.ProfessionalID,
		Action:         ev.Action,
		Entity:         ev.Entity,
		EntityID:       ev.EntityID,
		Metadata:       metaJSON,
	}

	return l.db.Create(&row).Error
}
