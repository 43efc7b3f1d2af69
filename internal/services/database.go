package services

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quizmaster_app/internal/config"
	"quizmaster_app/internal/models"
)

// Dialector picks the gorm driver for a DSN. postgres:// and postgresql://
// URLs go to postgres; sqlite: DSNs go to the pure-Go sqlite driver.
func Dialector(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		path, err := sqlitePath(dsn)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database url %q", dsn)
	}
}

// sqlitePath maps a sqlite DSN to a database file path. sqlite:<path> is
// taken as is. The URL form follows the usual convention: sqlite:///rel is
// the relative file rel, sqlite:////abs is /abs, and a bare sqlite:// is an
// in-memory database. sqlite://host/... has no meaning and is rejected.
func sqlitePath(dsn string) (string, error) {
	rest, isURL := strings.CutPrefix(dsn, "sqlite://")
	if !isURL {
		return strings.TrimPrefix(dsn, "sqlite:"), nil
	}
	if rest == "" {
		return ":memory:", nil
	}
	path, ok := strings.CutPrefix(rest, "/")
	if !ok || path == "" {
		return "", fmt.Errorf("unsupported database url %q: use sqlite:///relative or sqlite:////absolute", dsn)
	}
	return path, nil
}

// InitDB opens the database and applies the pool settings
func InitDB(dsn string, pool config.DB) (*gorm.DB, error) {
	dialector, err := Dialector(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return db, nil
}

// AutoMigrate creates or updates the tables for every model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Question{},
		&models.ScheduledTask{},
		&models.ScheduledTaskRun{},
	)
}
