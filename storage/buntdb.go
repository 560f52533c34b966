// Package storage provides optional persistence for the engine's last-fired
// statuses, so a restarted service does not re-fire alerts for conditions
// that have not changed.
package storage

import (
	"context"
	"fmt"

	"github.com/raykavin/signalert/core"
	"github.com/tidwall/buntdb"
)

// BuntStorage implements core.StateStorage using BuntDB
type BuntStorage struct {
	db *buntdb.DB
}

// BuntConfig holds configuration options for BuntDB
type BuntConfig struct {
	// SyncPolicy determines how often data is synchronized to disk
	SyncPolicy buntdb.SyncPolicy
}

// DefaultBuntConfig returns the default configuration for BuntDB
func DefaultBuntConfig() BuntConfig {
	return BuntConfig{
		SyncPolicy: buntdb.EverySecond,
	}
}

// NewFromMemory creates an in-memory storage with default configuration
func NewFromMemory() (core.StateStorage, error) {
	return NewBuntStorage(":memory:", DefaultBuntConfig())
}

// NewFromFile creates a file-based storage with default configuration
func NewFromFile(file string) (core.StateStorage, error) {
	return NewBuntStorage(file, DefaultBuntConfig())
}

// NewBuntStorage creates a new BuntDB storage instance with the specified configuration
func NewBuntStorage(sourceFile string, config BuntConfig) (core.StateStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	if err := db.SetConfig(buntdb.Config{
		SyncPolicy: config.SyncPolicy,
	}); err != nil {
		return nil, fmt.Errorf("failed to configure buntdb: %w", err)
	}

	return &BuntStorage{db: db}, nil
}

// SaveStatuses replaces the stored statuses with the given set
func (s *BuntStorage) SaveStatuses(_ context.Context, statuses map[string]core.Status) error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		if err := tx.DeleteAll(); err != nil {
			return err
		}

		for key, status := range statuses {
			if _, _, err := tx.Set(key, string(status), nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save statuses: %w", err)
	}

	return nil
}

// LoadStatuses retrieves every stored status
func (s *BuntStorage) LoadStatuses(_ context.Context) (map[string]core.Status, error) {
	statuses := make(map[string]core.Status)

	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(key, value string) bool {
			statuses[key] = core.Status(value)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}

	return statuses, nil
}

// Close releases the underlying database
func (s *BuntStorage) Close() error {
	return s.db.Close()
}
