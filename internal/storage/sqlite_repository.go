package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ReplaceTasks overwrites the tasks snapshot with the given records, in
// order, inside a single transaction.
func (r *SQLiteRepository) ReplaceTasks(ctx context.Context, in []TaskRecord) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}
		for i, rec := range in {
			tags, err := encodeTags(rec.Tags)
			if err != nil {
				return fmt.Errorf("encode tags for %s: %w", rec.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO tasks (position, id, title, done, notes, scheduled_at, importance, tags)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				i, rec.ID, rec.Title, boolInt(rec.Done), rec.Notes,
				nullTime(rec.ScheduledAt), rec.Importance, tags,
			)
			if err != nil {
				return fmt.Errorf("insert task %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadTasks(ctx context.Context) ([]TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT position, id, title, done, notes, scheduled_at, importance, tags
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TaskRecord, 0)
	for rows.Next() {
		var rec TaskRecord
		var done int
		var scheduled sql.NullString
		var tags string
		if err := rows.Scan(&rec.Position, &rec.ID, &rec.Title, &done, &rec.Notes, &scheduled, &rec.Importance, &tags); err != nil {
			return nil, err
		}
		rec.Done = done == 1
		rec.ScheduledAt, err = parseNullableTime(scheduled)
		if err != nil {
			return nil, err
		}
		rec.Tags, err = decodeTags(tags)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ReplaceTrash overwrites the trash snapshot, in order, transactionally.
func (r *SQLiteRepository) ReplaceTrash(ctx context.Context, in []TrashRecord) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM trash`); err != nil {
			return fmt.Errorf("clear trash: %w", err)
		}
		for i, rec := range in {
			tags, err := encodeTags(rec.Tags)
			if err != nil {
				return fmt.Errorf("encode tags for %s: %w", rec.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO trash (position, id, deleted_at, original_index, task_id, title, done, notes, scheduled_at, importance, tags)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				i, rec.ID, mustTime(rec.DeletedAt), rec.OriginalIndex, rec.TaskID,
				rec.Title, boolInt(rec.Done), rec.Notes, nullTime(rec.ScheduledAt),
				rec.Importance, tags,
			)
			if err != nil {
				return fmt.Errorf("insert trash entry %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadTrash(ctx context.Context) ([]TrashRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT position, id, deleted_at, original_index, task_id, title, done, notes, scheduled_at, importance, tags
		FROM trash ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TrashRecord, 0)
	for rows.Next() {
		var rec TrashRecord
		var deleted string
		var done int
		var scheduled sql.NullString
		var tags string
		if err := rows.Scan(&rec.Position, &rec.ID, &deleted, &rec.OriginalIndex, &rec.TaskID, &rec.Title, &done, &rec.Notes, &scheduled, &rec.Importance, &tags); err != nil {
			return nil, err
		}
		rec.DeletedAt, err = parseRequiredTime(deleted)
		if err != nil {
			return nil, err
		}
		rec.Done = done == 1
		rec.ScheduledAt, err = parseNullableTime(scheduled)
		if err != nil {
			return nil, err
		}
		rec.Tags, err = decodeTags(tags)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
