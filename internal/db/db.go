package db

import (
	"log"
	"time"

	"github.com/careconnect/clinic-scheduler/internal/config"
	"github.com/careconnect/clinic-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
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

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Appointment{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := ensureOverlapConstraint(db); err != nil {
		log.Fatalf("failed to install overlap constraint: %v", err)
	}

	return db
}

// ensureOverlapConstraint installs the store-level backstop against
// the booking check-then-insert race: two non-terminal appointments
// for one physician may never overlap. Booking must not run without
// it, so any failure here is surfaced.
func ensureOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
        DO $$ BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    physician_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                ) WHERE (status IN ('PENDING', 'CONFIRMED'));
            END IF;
        END $$
    `).Error
}
