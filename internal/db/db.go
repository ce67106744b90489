package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/config"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

// activeSlotIndex keeps a single live reservation per (date, start_time).
// Cancelled and completed rows drop out of the index and never block a slot.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_reservas_active_slot
	ON reservas (date, start_time)
	WHERE status NOT IN ('cancelled', 'completed')
`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), Options())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Options is shared with the sqlite test database so both stores see UTC
// timestamps and translated duplicate-key errors.
func Options() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Plan{},
		&models.Reservation{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return db.Exec(activeSlotIndex).Error
}
