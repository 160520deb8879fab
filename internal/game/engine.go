// internal/game/engine.go
//
// Game state manager for a single two-player game.
// Responsibilities:
//   - Create games in the setup phase and start them from setup input.
//   - Commit single scores, switch turns, edit scores, undo and reset.
//   - Keep the bounded undo stack (snapshot pushed right before each commit).
//
// Notes:
//   - Every operation is a pure transition: State in, State out.
//   - Rejected input is a silent no-op that returns the state unchanged.
//   - Anything other than Setup is ignored while the game is in setup.
//
// Package-level defaults are kept here for clarity.
package game

import (
	"slices"
	"strings"
	"time"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/scoring"
)

const (
	// MaxUndo is the undo stack depth; older snapshots are dropped.
	MaxUndo = 10

	defaultPlayer1Name = "Player 1"
	defaultPlayer2Name = "Player 2"

	// TimestampLayout formats HistoryEntry.Timestamp.
	TimestampLayout = "2006-01-02 15:04:05"
)

// SetupInput is what the setup form submits. Scores arrive as text.
type SetupInput struct {
	Player1Name  string `json:"player1Name"`
	Player2Name  string `json:"player2Name"`
	Player1Score string `json:"player1Score"`
	Player2Score string `json:"player2Score"`
}

// New returns a game waiting for setup.
func New(id string, at time.Time) State {
	return State{
		ID:        id,
		Phase:     PhaseSetup,
		Status:    StatusActive,
		Names:     Names{Player1: defaultPlayer1Name, Player2: defaultPlayer2Name},
		Current:   Player1,
		Draft:     newDraft(),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// Setup starts play from the setup form. Empty names fall back to
// placeholders; unparseable scores become 0. Ignored once the game is active.
func Setup(s State, in SetupInput) State {
	if s.Phase != PhaseSetup {
		return s
	}
	next := s.clone()
	next.Names = Names{
		Player1: nameOr(in.Player1Name, defaultPlayer1Name),
		Player2: nameOr(in.Player2Name, defaultPlayer2Name),
	}
	next.Starting = Scores{
		Player1: scoring.ParsePoints(in.Player1Score),
		Player2: scoring.ParsePoints(in.Player2Score),
	}
	next.Scores = next.Starting
	next.Current = Player1
	next.History = nil
	next.Turn = nil
	next.Draft = newDraft()
	next.Undo = nil
	next.Phase = PhaseActive
	next.Status = StatusActive
	return next
}

// AddSingleScore credits points to the current player without going through
// a multi-word turn. It records one history entry, clears the draft and
// passes play to the other player. Refused while the current turn holds words.
func AddSingleScore(s State, word, points string, at time.Time) State {
	if !CanAddSingle(s) {
		return s
	}
	next := s.clone()
	pushUndo(&next, s)

	n := scoring.ParsePoints(points)
	next.Scores = next.Scores.Add(s.Current, n)
	next.History = append(next.History, HistoryEntry{
		Player:    s.Current,
		Word:      strings.ToUpper(strings.TrimSpace(word)),
		Points:    n,
		Timestamp: at.Format(TimestampLayout),
	})
	next.Draft = newDraft()
	next.Current = s.Current.Other()
	return next
}

// EditScores overwrites both scores directly. History is untouched and no
// undo snapshot is taken.
func EditScores(s State, player1, player2 int) State {
	if s.Phase != PhaseActive {
		return s
	}
	next := s.clone()
	next.Scores = Scores{Player1: player1, Player2: player2}
	return next
}

// SwitchTurn passes play to the other player. Refused while the current
// turn holds words.
func SwitchTurn(s State) State {
	if !CanSwitch(s) {
		return s
	}
	next := s.clone()
	next.Current = s.Current.Other()
	return next
}

// Undo restores the most recent snapshot. Refused while the current turn
// holds words, since the snapshot may belong to the other player.
func Undo(s State) State {
	if !CanUndo(s) {
		return s
	}
	next := s.clone()
	last := next.Undo[len(next.Undo)-1]
	next.Undo = next.Undo[:len(next.Undo)-1]
	if len(next.Undo) == 0 {
		next.Undo = nil
	}
	next.Scores = last.Scores
	next.History = slices.Clone(last.History)
	next.Current = last.Current
	return next
}

// Reset clears everything and sends the game back to setup. Names are kept
// only as a starting point for the setup form.
func Reset(s State) State {
	next := s.clone()
	next.Phase = PhaseSetup
	next.Status = StatusActive
	next.Starting = Scores{}
	next.Scores = Scores{}
	next.Current = Player1
	next.History = nil
	next.Turn = nil
	next.Draft = newDraft()
	next.Undo = nil
	return next
}

// SetStatus marks an active game as active, paused or final.
func SetStatus(s State, status Status) State {
	if s.Phase != PhaseActive || !status.Valid() {
		return s
	}
	next := s.clone()
	next.Status = status
	return next
}

// CanUndo reports whether Undo would change anything.
func CanUndo(s State) bool { return s.Phase == PhaseActive && len(s.Turn) == 0 && len(s.Undo) > 0 }

// CanAddSingle reports whether AddSingleScore is allowed.
func CanAddSingle(s State) bool { return s.Phase == PhaseActive && len(s.Turn) == 0 }

// CanSwitch reports whether SwitchTurn is allowed.
func CanSwitch(s State) bool { return s.Phase == PhaseActive && len(s.Turn) == 0 }

// pushUndo records prev's committed state on next's undo stack.
func pushUndo(next *State, prev State) {
	next.Undo = append(next.Undo, Snapshot{
		Scores:  prev.Scores,
		History: slices.Clone(prev.History),
		Current: prev.Current,
	})
	if len(next.Undo) > MaxUndo {
		next.Undo = slices.Clone(next.Undo[len(next.Undo)-MaxUndo:])
	}
}

// clone copies s so the copy can be modified without touching s.
func (s State) clone() State {
	out := s
	out.History = slices.Clone(s.History)
	out.Turn = slices.Clone(s.Turn)
	out.Undo = slices.Clone(s.Undo)
	out.Draft = s.Draft.clone()
	return out
}

func nameOr(name, def string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return def
}
