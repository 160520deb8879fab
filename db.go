// apps/go-server/db.go
//
// Database helpers for the scorekeeper server.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//
// Only used when DATABASE_PATH is set; otherwise games stay in memory.

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/scorekeeper/apps/go-server/assets"
)

// openDB opens (and creates if missing) a SQLite database file.
// The parent directory is created for relative paths such as ./data/games.db.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// single writer; the session manager already serialises mutations
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded SQL migrations in lexical order.
// Applied names are recorded in _migrations and skipped next time. Scripts
// that manage their own transaction run outside of one.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		if selfManaged(m.SQL) {
			if _, err := db.Exec(m.SQL); err != nil {
				return fmt.Errorf("apply %s: %w", m.Name, err)
			}
			if _, err := db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
				return fmt.Errorf("record %s: %w", m.Name, err)
			}
			log.Info().Str("migration", m.Name).Msg("applied (self-managed)")
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// selfManaged reports whether a script opens its own transaction or toggles
// foreign keys, neither of which works inside an outer transaction.
func selfManaged(script string) bool {
	upper := strings.ToUpper(script)
	return strings.Contains(upper, "BEGIN TRANSACTION") ||
		strings.Contains(upper, "PRAGMA FOREIGN_KEYS=OFF") ||
		strings.Contains(upper, "PRAGMA FOREIGN_KEYS = OFF")
}
