// internal/store/sqlite.go
//
// SQLite-backed Store. Each game is one row holding the JSON encoding of
// game.State, so every field round-trips exactly. The games table is created
// by the embedded migrations (see assets).

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
)

// SQLStore persists games in a SQL database.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open, migrated database handle.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Save upserts the game row.
func (s *SQLStore) Save(ctx context.Context, st game.State) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", st.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, state, created_at, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		st.ID, string(doc), st.CreatedAt.UTC().Format(time.RFC3339Nano), st.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", st.ID, err)
	}
	return nil
}

// Get loads and decodes one game.
func (s *SQLStore) Get(ctx context.Context, id string) (game.State, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM games WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return game.State{}, ErrNotFound
	}
	if err != nil {
		return game.State{}, fmt.Errorf("load game %s: %w", id, err)
	}
	return decodeState(doc)
}

// Delete removes one game row.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

// List returns the most recently updated games.
func (s *SQLStore) List(ctx context.Context, limit int) ([]game.State, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT state FROM games
        ORDER BY updated_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	out := make([]game.State, 0, limit)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		st, err := decodeState(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func decodeState(doc string) (game.State, error) {
	var st game.State
	if err := json.Unmarshal([]byte(doc), &st); err != nil {
		return game.State{}, fmt.Errorf("decode game: %w", err)
	}
	return st, nil
}
