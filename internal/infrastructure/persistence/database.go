// Package persistence opens and migrates the application database.
package persistence

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/infrastructure/config"
	gormrepo "github.com/foodgram/backend/internal/infrastructure/persistence/gorm"
	"github.com/foodgram/backend/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase opens the configured database and runs migrations. The
// sqlite driver keeps local development and tests self-contained; postgres
// is for deployments.
func NewDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg)),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Database.Path), gormConfig)
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN()), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database ready",
		zap.String("driver", cfg.Database.Driver),
	)
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&gormrepo.UserModel{},
		&gormrepo.MeasurementModel{},
		&gormrepo.LineItemModel{},
		&gormrepo.TagModel{},
		&gormrepo.RecipeModel{},
		&gormrepo.CartEntryModel{},
		&gormrepo.FavoriteModel{},
		&gormrepo.SubscriptionModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SeedMeasurements loads the measurement catalog from a CSV file of
// "name,unit" rows if the catalog is still empty. The seed is the only
// write path into the catalog.
func SeedMeasurements(ctx context.Context, repo outbound.MeasurementRepository, path string, logger *zap.Logger) error {
	if path == "" {
		return nil
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	measurements := make([]*recipe.Measurement, 0, len(rows))
	for _, row := range rows {
		m := recipe.Measurement{Name: row[0], Unit: row[1]}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("invalid seed row %v: %w", row, err)
		}
		measurements = append(measurements, &m)
	}

	start := time.Now()
	if err := repo.SaveBatch(ctx, measurements); err != nil {
		return err
	}

	logger.Info("Measurement catalog seeded",
		zap.Int("entries", len(measurements)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.App.Debug {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
