// internal/game/turn.go
//
// Turn aggregation: collect several scored words for the current player,
// then commit them together.
//
// Completing a turn writes one history entry per word and, when the turn had
// more than one word, a trailing "TURN TOTAL (n words)" summary entry. The
// summary is for display grouping only; statistics must skip it.

package game

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/scoring"
)

// AddWordToTurn scores word with the draft's bonus state and appends it to
// the turn. override, when it parses as an integer, replaces the computed
// points. The draft is reset afterwards so bonuses never leak into the next
// word.
func AddWordToTurn(s State, word, override string) State {
	word = strings.ToUpper(strings.TrimSpace(word))
	if s.Phase != PhaseActive || word == "" {
		return s
	}
	next := s.clone()

	m := s.Draft.Multipliers(word)
	base := scoring.WordBaseValue(word)
	withBonuses := scoring.Score(word, m)

	next.Turn = append(next.Turn, WordEntry{
		Word:        word,
		BasePoints:  base,
		BonusPoints: withBonuses - base,
		FinalPoints: scoring.ResolveFinalPoints(override, &withBonuses),
		Multipliers: m,
		TilesUsed:   s.Draft.TilesUsed,
	})
	next.Draft = newDraft()
	return next
}

// RemoveWordFromTurn drops the entry at index. Out-of-range indexes are
// ignored.
func RemoveWordFromTurn(s State, index int) State {
	if index < 0 || index >= len(s.Turn) {
		return s
	}
	next := s.clone()
	next.Turn = slices.Delete(next.Turn, index, index+1)
	if len(next.Turn) == 0 {
		next.Turn = nil
	}
	return next
}

// TurnTotal sums the credited points of turn.
func TurnTotal(turn []WordEntry) int {
	total := 0
	for _, e := range turn {
		total += e.FinalPoints
	}
	return total
}

// CompleteTurn commits the turn to the current player's score, logs it and
// passes play to the other player. An empty turn is ignored.
func CompleteTurn(s State, at time.Time) State {
	if !CanComplete(s) {
		return s
	}
	next := s.clone()
	pushUndo(&next, s)

	player := s.Current
	total := TurnTotal(s.Turn)
	ts := at.Format(TimestampLayout)

	next.Scores = next.Scores.Add(player, total)
	for _, e := range s.Turn {
		m := e.Multipliers.Clone()
		next.History = append(next.History, HistoryEntry{
			Player:      player,
			Word:        e.Word,
			Points:      e.FinalPoints,
			Timestamp:   ts,
			Multipliers: &m,
		})
	}
	if n := len(s.Turn); n > 1 {
		next.History = append(next.History, HistoryEntry{
			Player:        player,
			Word:          TurnSummaryLabel(n),
			Points:        total,
			Timestamp:     ts,
			IsTurnSummary: true,
		})
	}
	next.Turn = nil
	next.Current = player.Other()
	return next
}

// CanComplete reports whether CompleteTurn would commit anything.
func CanComplete(s State) bool { return s.Phase == PhaseActive && len(s.Turn) > 0 }

// TurnSummaryLabel is the word shown on a turn's summary history entry.
func TurnSummaryLabel(n int) string { return fmt.Sprintf("TURN TOTAL (%d words)", n) }
