package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"telegram-shift-bot/internal/models"
)

// JSONFile keeps the schedule as one indented JSON array on disk.
type JSONFile struct {
	path string
	log  *zap.Logger
}

func NewJSONFile(path string, log *zap.Logger) *JSONFile {
	return &JSONFile{path: path, log: log}
}

func (f *JSONFile) Load(_ context.Context) ([]models.Shift, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Debug("no schedule saved yet", zap.String("path", f.path))
		return []models.Shift{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	shifts, err := decodeShifts(data)
	if err != nil {
		f.log.Error("schedule file is malformed", zap.String("path", f.path), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return shifts, nil
}

// Save writes into a temp file next to the target and renames it over, so a
// concurrent Load sees either the old or the new collection.
func (f *JSONFile) Save(_ context.Context, shifts []models.Shift) error {
	data, err := encodeShifts(shifts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}

	f.log.Debug("schedule saved", zap.String("path", f.path), zap.Int("shifts", len(shifts)))
	return nil
}

// encodeShifts renders the persisted document: two-space indent, non-ASCII
// and HTML characters kept literally.
func encodeShifts(shifts []models.Shift) ([]byte, error) {
	if shifts == nil {
		shifts = []models.Shift{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(shifts); err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeShifts(data []byte) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := json.Unmarshal(data, &shifts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if shifts == nil {
		// a literal "null" document
		shifts = []models.Shift{}
	}
	return shifts, nil
}
