package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pranamithra/scheduler/internal/config"
	"github.com/pranamithra/scheduler/internal/models"
)

// NewDB opens the postgres pool and pings it.
func NewDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Msg("connected to database")
	return db, nil
}

// bookedSlotIndex allows one BOOKED appointment per doctor, date and slot.
// Cancelled and completed rows are outside the index, so a freed slot can be
// booked again.
const bookedSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS uniq_booked_slot
	ON appointments (doctor_id, date, slot_label)
	WHERE status = 'BOOKED'
`

func Migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)

	if err := tx.AutoMigrate(
		&models.Doctor{},
		&models.Customer{},
		&models.Admin{},
		&models.Schedule{},
		&models.AppointmentCost{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := tx.Exec(bookedSlotIndex).Error; err != nil {
		return fmt.Errorf("create uniq_booked_slot: %w", err)
	}

	return nil
}
