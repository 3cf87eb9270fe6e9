// Package db provides the GORM-based on-device cache for CampusPocket.
// It uses the pure-Go SQLite driver; one database holds all cache domains
// (fields, posts, session), which touch disjoint tables.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campuspocket/campuspocket/internal/models"
)

// DB wraps the GORM database connection with CampusPocket-specific
// operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and ensures the schema exists.
// Safe to call on every app start; migrations never drop existing data.
// A failure here means the cache is unusable and must be surfaced upward.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true, // Better performance for read operations
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.Field{},
		&models.Program{},
		&models.Course{},
		&models.FieldImage{},
		&models.Post{},
		&models.PostImage{},
		&models.Session{},
		&models.AppState{},
	)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
// If the callback returns nil, the transaction is committed.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// CacheStats aggregates cache statistics across domains.
type CacheStats struct {
	Fields         int64
	Posts          int64
	FieldImages    int64
	PostImages     int64
	SignedIn       bool
	CacheSizeBytes int64
	LastUpdated    time.Time
}

// GetStats returns aggregate statistics about the cache.
func (db *DB) GetStats() (*CacheStats, error) {
	var stats CacheStats

	if err := db.Model(&models.Field{}).Count(&stats.Fields).Error; err != nil {
		return nil, fmt.Errorf("count fields: %w", err)
	}
	if err := db.Model(&models.Post{}).Count(&stats.Posts).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	if err := db.Model(&models.FieldImage{}).Count(&stats.FieldImages).Error; err != nil {
		return nil, fmt.Errorf("count field images: %w", err)
	}
	if err := db.Model(&models.PostImage{}).Count(&stats.PostImages).Error; err != nil {
		return nil, fmt.Errorf("count post images: %w", err)
	}

	session, err := db.GetSession()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	stats.SignedIn = session != nil

	if info, err := os.Stat(db.path); err == nil {
		stats.CacheSizeBytes = info.Size()
	}

	stats.LastUpdated = time.Now()

	return &stats, nil
}
