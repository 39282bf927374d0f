package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"telegram-shift-bot/internal/models"
)

//go:generate mockgen -source=storage.go -destination=../mocks/store_mock.go -package=mocks

// ErrCorrupt marks persisted data that exists but cannot be decoded. It is
// never turned into an empty schedule.
var ErrCorrupt = errors.New("schedule data is malformed")

// Store loads and replaces the whole shift collection. Save is atomic from a
// reader's point of view; Load returns an empty slice when nothing was saved
// yet.
type Store interface {
	Load(ctx context.Context) ([]models.Shift, error)
	Save(ctx context.Context, shifts []models.Shift) error
}

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Open returns the backend named by driver. The returned closer releases
// database handles and is a no-op for the file backend.
func Open(driver, path string, log *zap.Logger) (Store, func() error, error) {
	switch driver {
	case DriverJSON, "":
		return NewJSONFile(path, log), func() error { return nil }, nil
	case DriverSQLite:
		db, err := New(path, log)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case DriverBolt:
		b, err := NewBolt(path, log)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
}
