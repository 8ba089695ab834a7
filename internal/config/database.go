package config

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

var ErrMissingDSN = errors.New("DATABASE_DSN is not set")

// Open opens a gorm connection for the given driver ("postgres" or "sqlite").
func Open(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	var dialector gorm.Dialector
	switch driver {
	case "", "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
	})
}

func Connect(ctx context.Context, driver, dsn string) error {
	log := WithContext(ctx)

	db, err := Open(driver, dsn)
	if err != nil {
		log.WithError(err).Error("Failed to open database")
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.WithError(err).Error("Database ping failed")
		return err
	}
	if driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}

	DB = db
	log.WithField("driver", driver).Info("Database connected")
	return nil
}

// Migrate runs gorm AutoMigrate for the given models.
func Migrate(db *gorm.DB, models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		Logger.WithError(err).Error("Failed to auto-migrate")
		return err
	}
	Logger.Info("Database migrated")
	return nil
}
