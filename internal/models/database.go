package models

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conectahub/backend/internal/config"
	"github.com/conectahub/backend/pkg/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite" // pure Go driver registered as "sqlite"
)

// InitDB opens the store selected by cfg. The returned handle is meant to be
// passed to every service constructor.
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite", sqliteDSN(cfg.DSN))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// single writer; keeps check-then-insert paths serialized
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(time.Hour)
		dialector = sqlite.Dialector{Conn: sqlDB}
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

// newGormLogger sends slow queries and failures through the application
// logger. Lookup misses are an expected outcome and stay quiet.
func newGormLogger() gormlogger.Interface {
	return gormlogger.New(logger.GormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func sqliteDSN(path string) string {
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite"
}

// IsUniqueViolation reports whether err comes from a unique index. The pure-Go
// sqlite driver is not covered by gorm's error translation, so its message is
// matched directly.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Briefing{},
		&Project{},
		&Collaborator{},
		&Like{},
		&Comment{},
		&Vaga{},
		&Connection{},
		&Chat{},
		&Message{},
		&Notification{},
	)
}

// Ping reports whether the underlying connection is reachable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
