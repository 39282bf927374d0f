package storage

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/models"
)

var (
	scheduleBucketName = []byte("schedule")
	shiftsKey          = []byte("shifts")
)

// Bolt stores the same JSON document as JSONFile under a single key of a
// bbolt bucket.
type Bolt struct {
	db  *bolt.DB
	log *zap.Logger
}

func NewBolt(path string, log *zap.Logger) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(scheduleBucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Bolt{db: db, log: log}, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) Load(_ context.Context) ([]models.Shift, error) {
	var shifts []models.Shift

	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(scheduleBucketName).Get(shiftsKey)
		if raw == nil {
			b.log.Debug("no schedule saved yet")
			shifts = []models.Shift{}
			return nil
		}

		var err error
		shifts, err = decodeShifts(raw)
		if err != nil {
			b.log.Error("stored schedule is malformed", zap.Error(err))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

func (b *Bolt) Save(_ context.Context, shifts []models.Shift) error {
	raw, err := encodeShifts(shifts)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(scheduleBucketName).Put(shiftsKey, raw)
	})
}
