package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Only one live appointment may start at a given instant for a
// professional; cancelled rows keep their history.
const uniqueLiveStart = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_professional_start
	ON appointments (professional_id, start_time)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Professional{},
		&models.WorkDay{},
		&models.WorkBreak{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.TimeBlock{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	if err := db.Exec(uniqueLiveStart).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment index: %w", err)
	}

	log.Info("database connected and migrated")

	return db, nil
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
