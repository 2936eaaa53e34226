// Package database opens the configured store and hands back a
// repository.Manager over it.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kbaid4/testwecicada/internal/config"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
	"github.com/kbaid4/testwecicada/internal/repository/gormrepo"
	"github.com/kbaid4/testwecicada/internal/repository/memory"
)

// Dialector picks the gorm driver for a configured driver name.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("database: unsupported driver %q", driver)
}

// Open connects with TranslateError enabled so unique violations surface as
// gorm.ErrDuplicatedKey, then migrates every model.
func Open(d gorm.Dialector, level string) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(gormLogLevel(level)),
	})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}

// NewManager returns the repositories for cfg.DBDriver. The memory driver
// needs no DSN and keeps nothing across restarts.
func NewManager(ctx context.Context, cfg *config.Config) (repository.Manager, error) {
	if cfg.DBDriver == config.DriverMemory {
		return memory.NewManager(), nil
	}

	d, err := Dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	db, err := Open(d, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	m := gormrepo.NewManager(db)
	if err := m.Ping(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return m, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch logging.ParseLevel(level) {
	case slog.LevelDebug:
		return logger.Info
	case slog.LevelError:
		return logger.Error
	}
	return logger.Warn
}
