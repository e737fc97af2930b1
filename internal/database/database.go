package database

import (
	"fmt"
	"os"
	"time"

	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Initialize creates and configures the database connection. Postgres when
// DATABASE_URL is set, an on-disk SQLite file otherwise.
func Initialize() error {
	gormConfig := &gorm.Config{
		Logger: gormLogger(),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var (
		db  *gorm.DB
		err error
	)
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "ethnograph.db"
		}
		db, err = gorm.Open(sqlite.Open(path), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	logger.Log.Info("Database connected")
	return nil
}

// Migrate runs auto-migration for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(
		&models.Dataset{},
		&models.DatasetEvent{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	DB.Exec("CREATE INDEX IF NOT EXISTS idx_dataset_events_dataset ON dataset_events (dataset_id)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_dataset_events_author ON dataset_events (author)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_dataset_events_source ON dataset_events (source)")

	logger.Log.Info("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func gormLogger() gormlogger.Interface {
	if os.Getenv("ENVIRONMENT") == "development" {
		return gormlogger.Default.LogMode(gormlogger.Info)
	}
	return gormlogger.Default.LogMode(gormlogger.Silent)
}
