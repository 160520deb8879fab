// internal/game/types.go
//
// Core type definitions for a two-player scorekeeping game.
// Defines:
//   - Player: which of the two seats is acting (1 or 2).
//   - Scores / Names: two-slot values addressed by Player.
//   - WordEntry: a scored word waiting in the current turn.
//   - HistoryEntry: an immutable record of a committed score.
//   - Snapshot: what undo restores.
//   - State: the whole game, passed into and returned from every operation.

package game

import (
	"time"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/scoring"
)

// Player identifies a seat at the table.
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Other returns the opponent of p.
func (p Player) Other() Player {
	if p == Player2 {
		return Player1
	}
	return Player2
}

// Valid reports whether p is one of the two seats.
func (p Player) Valid() bool { return p == Player1 || p == Player2 }

// Scores holds both players' running totals.
type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Of returns the score of p.
func (s Scores) Of(p Player) int {
	if p == Player2 {
		return s.Player2
	}
	return s.Player1
}

// Add returns a copy of s with n added to p's score.
func (s Scores) Add(p Player, n int) Scores {
	if p == Player2 {
		s.Player2 += n
	} else {
		s.Player1 += n
	}
	return s
}

// Names holds both players' display names.
type Names struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// Of returns the display name of p.
func (n Names) Of(p Player) string {
	if p == Player2 {
		return n.Player2
	}
	return n.Player1
}

// Phase is the coarse lifecycle of a game.
type Phase string

const (
	PhaseSetup  Phase = "setup"  // waiting for names and starting scores
	PhaseActive Phase = "active" // scores can be entered
)

// Status is a presentational marker layered on top of an active game.
// It has no effect on scoring.
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusFinal  Status = "final"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusFinal:
		return true
	}
	return false
}

// WordEntry is one scored word inside the turn in progress.
type WordEntry struct {
	Word        string              `json:"word"`        // uppercase
	BasePoints  int                 `json:"basePoints"`  // sum of letter values
	BonusPoints int                 `json:"bonusPoints"` // bonus-adjusted value minus base
	FinalPoints int                 `json:"finalPoints"` // points actually credited
	Multipliers scoring.Multipliers `json:"multipliers"`
	TilesUsed   int                 `json:"tilesUsed"`
}

// HistoryEntry is an append-only log record of committed points.
type HistoryEntry struct {
	Player        Player               `json:"player"`
	Word          string               `json:"word"`
	Points        int                  `json:"points"`
	Timestamp     string               `json:"timestamp"`
	IsTurnSummary bool                 `json:"isTurnSummary"`
	Multipliers   *scoring.Multipliers `json:"multipliers,omitempty"`
}

// Snapshot is the part of State that undo restores.
type Snapshot struct {
	Scores  Scores         `json:"scores"`
	History []HistoryEntry `json:"history"`
	Current Player         `json:"currentPlayer"`
}

// State is a complete game. Operations in this package take a State and
// return the next one; the argument is never modified.
type State struct {
	ID       string         `json:"id"`
	Phase    Phase          `json:"phase"`
	Status   Status         `json:"status"`
	Names    Names          `json:"names"`
	Starting Scores         `json:"startingScores"` // scores entered at setup
	Scores   Scores         `json:"scores"`
	Current  Player         `json:"currentPlayer"`
	History  []HistoryEntry `json:"history"`
	Turn     []WordEntry    `json:"turn"`
	Draft    Draft          `json:"draft"`
	Undo     []Snapshot     `json:"undo"`

	// PinHash locks manual score edits when set (bcrypt hash).
	PinHash string `json:"pinHash,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
