package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"telegram-shift-bot/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

// DB is the SQLite backend. Row order is kept in the position column so Load
// returns shifts in the order they were saved.
type DB struct {
	*sql.DB
	log *zap.Logger
}

func New(path string, log *zap.Logger) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &DB{DB: db, log: log}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

func (d *DB) Load(ctx context.Context) ([]models.Shift, error) {
	rows, err := d.QueryContext(ctx, `
        SELECT id, username, start_time, end_time
        FROM shifts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	defer rows.Close()

	res := []models.Shift{}
	for rows.Next() {
		var s models.Shift
		if err := rows.Scan(&s.ID, &s.Username, &s.StartTime, &s.EndTime); err != nil {
			d.log.Error("shift row is malformed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read shifts: %w", err)
	}
	if len(res) == 0 {
		d.log.Debug("no schedule saved yet")
	}
	return res, nil
}

// Save replaces every row inside one transaction.
func (d *DB) Save(ctx context.Context, shifts []models.Shift) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shifts`); err != nil {
		return fmt.Errorf("clear shifts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO shifts (id, username, start_time, end_time, position)
        VALUES (?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range shifts {
		if _, err := stmt.ExecContext(ctx, s.ID, s.Username, s.StartTime, s.EndTime, i); err != nil {
			return fmt.Errorf("insert shift %d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	d.log.Debug("schedule saved", zap.Int("shifts", len(shifts)))
	return nil
}
