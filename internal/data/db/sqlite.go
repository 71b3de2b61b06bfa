package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

// DefaultSQLitePath is used when DB_DRIVER=sqlite and no path is configured.
const DefaultSQLitePath = "schoolmeal.db"

func openSQLite(path string, log *logger.Logger) (*gorm.DB, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	// sqlite serialises writers; one connection avoids "database is locked".
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	log.Info("opened sqlite database", "path", path)
	return db, nil
}
