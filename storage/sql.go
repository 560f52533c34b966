package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/raykavin/signalert/core"
	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLStorage implements core.StateStorage using a SQL database via GORM
type SQLStorage struct {
	db *gorm.DB
}

// OccurrenceStatus is the persisted record of one occurrence's last-fired status
type OccurrenceStatus struct {
	Key       string `gorm:"primaryKey"`
	Status    string
	UpdatedAt time.Time
}

// Config holds the configuration for SQL database connections
type Config struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a default configuration for SQL connections
func DefaultConfig() Config {
	return Config{
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: time.Hour,
	}
}

// NewFromSQLite creates a new SQLite storage instance
func NewFromSQLite(dbPath string, config Config, opts ...gorm.Option) (core.StateStorage, error) {
	dialect := sqlite.Open(dbPath)
	return newFromSQL(dialect, config, opts...)
}

// newFromSQL creates a new SQL storage instance with the specified configuration
func newFromSQL(dialect gorm.Dialector, config Config, opts ...gorm.Option) (core.StateStorage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err = db.AutoMigrate(&OccurrenceStatus{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{db: db}, nil
}

// SaveStatuses replaces the stored statuses with the given set
func (s *SQLStorage) SaveStatuses(ctx context.Context, statuses map[string]core.Status) error {
	records := lo.MapToSlice(statuses, func(key string, status core.Status) OccurrenceStatus {
		return OccurrenceStatus{
			Key:       key,
			Status:    string(status),
			UpdatedAt: time.Now(),
		}
	})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("1 = 1").Delete(&OccurrenceStatus{}); result.Error != nil {
			return result.Error
		}

		if len(records) == 0 {
			return nil
		}

		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save statuses: %w", err)
	}

	return nil
}

// LoadStatuses retrieves every stored status
func (s *SQLStorage) LoadStatuses(ctx context.Context) (map[string]core.Status, error) {
	var records []OccurrenceStatus
	if result := s.db.WithContext(ctx).Find(&records); result.Error != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", result.Error)
	}

	statuses := lo.SliceToMap(records, func(record OccurrenceStatus) (string, core.Status) {
		return record.Key, core.Status(record.Status)
	})

	return statuses, nil
}
