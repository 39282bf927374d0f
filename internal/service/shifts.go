// Package service implements schedule mutations on top of a storage.Store.
// Every operation reads the collection fresh and writes it back whole.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"telegram-shift-bot/internal/models"
	"telegram-shift-bot/internal/schedule"
	"telegram-shift-bot/internal/storage"
)

var ErrShiftNotFound = errors.New("shift not found")

type Shifts struct {
	store storage.Store
	log   *zap.Logger
}

func NewShifts(store storage.Store, log *zap.Logger) *Shifts {
	return &Shifts{store: store, log: log}
}

// List returns the schedule in stored order.
func (s *Shifts) List(ctx context.Context) ([]models.Shift, error) {
	shifts, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	return shifts, nil
}

func (s *Shifts) Get(ctx context.Context, id int) (models.Shift, error) {
	shifts, err := s.List(ctx)
	if err != nil {
		return models.Shift{}, err
	}
	if i := indexOf(shifts, id); i >= 0 {
		return shifts[i], nil
	}
	return models.Shift{}, ErrShiftNotFound
}

// Add appends a new shift with the next free id and returns it.
func (s *Shifts) Add(ctx context.Context, username, start, end string) (models.Shift, error) {
	shifts, err := s.List(ctx)
	if err != nil {
		return models.Shift{}, err
	}

	shift := models.Shift{
		ID:        schedule.NextID(shifts),
		Username:  username,
		StartTime: start,
		EndTime:   end,
	}
	shifts = append(shifts, shift)

	if err := s.store.Save(ctx, shifts); err != nil {
		return models.Shift{}, fmt.Errorf("save schedule: %w", err)
	}

	s.log.Info("shift added",
		zap.Int("id", shift.ID),
		zap.String("interval", shift.Interval()),
		zap.String("username", shift.Username))
	return shift, nil
}

// Update overwrites time and username of an existing shift in place; the id
// and position are kept.
func (s *Shifts) Update(ctx context.Context, id int, username, start, end string) (models.Shift, error) {
	shifts, err := s.List(ctx)
	if err != nil {
		return models.Shift{}, err
	}

	i := indexOf(shifts, id)
	if i < 0 {
		return models.Shift{}, ErrShiftNotFound
	}
	shifts[i].StartTime = start
	shifts[i].EndTime = end
	shifts[i].Username = username

	if err := s.store.Save(ctx, shifts); err != nil {
		return models.Shift{}, fmt.Errorf("save schedule: %w", err)
	}

	s.log.Info("shift updated",
		zap.Int("id", id),
		zap.String("interval", shifts[i].Interval()),
		zap.String("username", username))
	return shifts[i], nil
}

// Delete removes the shift and returns it. A missing id leaves the stored
// collection untouched.
func (s *Shifts) Delete(ctx context.Context, id int) (models.Shift, error) {
	shifts, err := s.List(ctx)
	if err != nil {
		return models.Shift{}, err
	}

	i := indexOf(shifts, id)
	if i < 0 {
		return models.Shift{}, ErrShiftNotFound
	}
	removed := shifts[i]
	shifts = append(shifts[:i], shifts[i+1:]...)

	if err := s.store.Save(ctx, shifts); err != nil {
		return models.Shift{}, fmt.Errorf("save schedule: %w", err)
	}

	s.log.Info("shift deleted",
		zap.Int("id", id),
		zap.String("interval", removed.Interval()),
		zap.String("username", removed.Username))
	return removed, nil
}

func indexOf(shifts []models.Shift, id int) int {
	for i, s := range shifts {
		if s.ID == id {
			return i
		}
	}
	return -1
}
