package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var snapshotSchema embed.FS

// MigrateUp brings the snapshot schema up to date. The scripts guard with
// IF NOT EXISTS, so running this on every open is safe.
func MigrateUp(db *sql.DB) error {
	return runScripts(db, snapshotSchema, ".up.sql", false)
}

// MigrateDown tears the snapshot schema back down, newest script first.
func MigrateDown(db *sql.DB) error {
	return runScripts(db, snapshotSchema, ".down.sql", true)
}

func runScripts(db *sql.DB, fsys fs.FS, suffix string, reverse bool) error {
	names, err := fs.Glob(fsys, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("list migration scripts: %w", err)
	}
	sort.Strings(names)
	if reverse {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	for _, name := range names {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read script %s: %w", name, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			return fmt.Errorf("run script %s: %w", name, err)
		}
	}
	return nil
}
