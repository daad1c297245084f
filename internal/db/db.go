package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-club/internal/config"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
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

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables plus the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB, defaultTZ string) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.BarberProduct{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
		&models.ClubPlan{},
		&models.PlanItem{},
		&models.Subscription{},
		&models.UsageRecord{},
		&models.Transaction{},
		&models.Commission{},
		&models.ReminderOffset{},
		&models.ReminderLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("constraint: %w", err)
		}
	}

	if err := db.Exec(`
        UPDATE barbershops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTZ).Error; err != nil {
		return fmt.Errorf("backfill timezone: %w", err)
	}

	return nil
}

var constraints = []string{
	// No two calendar-occupying bookings of one professional may overlap.
	`DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
        ) THEN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    barber_id WITH =,
                    tstzrange(start_time, end_time, '[)') WITH &&
                ) WHERE (status <> 'cancelled');
        END IF;
    END $$`,

	// At most one active subscription per client and barbershop.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_subscriptions_active_client
        ON subscriptions (barbershop_id, client_id)
        WHERE status = 'active'`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_reminder_due
        ON appointments (barbershop_id, start_time)
        WHERE status IN ('pending', 'confirmed')`,
}
