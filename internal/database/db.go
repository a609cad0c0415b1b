package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/drizz21/car-rent-new/internal/config"
	"github.com/drizz21/car-rent-new/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres. TranslateError lets repositories match
// gorm.ErrDuplicatedKey instead of driver error codes.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormLog := logger.Default.LogMode(logger.Warn)
	if cfg.Env == "dev" || cfg.Env == "local" {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormLog,
		NowFunc: func() time.Time {
			return time.Now().In(cfg.Location)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gagal terhubung ke database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. Bookings written before rental_type
// existed are reclassified from jenis.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Booking{},
		&models.Expense{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_single_owner
		ON users ((role)) WHERE role = 'owner'`).Error; err != nil {
		return fmt.Errorf("owner index: %w", err)
	}

	res := db.Exec(`UPDATE bookings SET rental_type = 'with-driver'
		WHERE rental_type <> 'with-driver' AND LOWER(jenis) LIKE '%sopir%'`)
	if res.Error != nil {
		return fmt.Errorf("reclassify rental types: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Info("rental types reclassified", slog.Int64("rows", res.RowsAffected))
	}

	log.Info("database migrated")
	return nil
}
