package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/database/models"
)

// Database is the main database handle for the application
type Database struct {
	conn   *Connection
	config *Config
}

// New creates a database instance from configuration
func New(config *Config) (*Database, error) {
	if config == nil {
		config = DefaultConfig()
	}
	conn, err := NewConnection(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	return &Database{conn: conn, config: config}, nil
}

// Connect verifies connectivity and runs migrations when enabled
func (db *Database) Connect(ctx context.Context) error {
	if err := db.conn.Ping(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if db.config.AutoMigrate {
		if err := db.conn.DB().WithContext(ctx).AutoMigrate(models.AllModels()...); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Ping checks connection health
func (db *Database) Ping(ctx context.Context) error {
	return db.conn.Ping(ctx)
}

// Close closes the connection pool
func (db *Database) Close() error {
	return db.conn.Close()
}

// DB returns the underlying GORM instance
func (db *Database) DB() *gorm.DB {
	return db.conn.DB()
}
