package devstack

import (
	"fmt"

	"github.com/foodexpress/foodexpress-client/config"
	"github.com/foodexpress/foodexpress-client/internal/devstack/model"
	appLogger "github.com/foodexpress/foodexpress-client/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects to postgres when a DSN is configured and falls back
// to a local sqlite file otherwise.
func OpenDatabase(cfg config.DevstackConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseDSN != "" {
		appLogger.Info("Connecting to postgres", map[string]interface{}{
			"driver": "postgres",
		})
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), gormConfig)
	} else {
		appLogger.Info("Connecting to sqlite", map[string]interface{}{
			"driver": "sqlite",
			"path":   cfg.SQLitePath,
		})
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	appLogger.Info("Database connection established successfully", nil)
	return db, nil
}

// Migrate runs the schema migrations.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Restaurant{},
		&model.Category{},
		&model.Dish{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// OpenTestDatabase creates an in-memory sqlite database for tests.
func OpenTestDatabase() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
