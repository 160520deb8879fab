// internal/stats/stats.go
//
// Read-only views derived from a game's history.
// Responsibilities:
//   - Per-player word statistics (count, average, best word).
//   - Word-length distribution.
//   - Running score timeline starting from the setup scores.
//   - Rows for the CSV exporter.
//
// Turn-summary entries repeat points already logged per word, so every
// per-word figure skips them.

package stats

import (
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
)

// PlayerSummary aggregates one player's word plays.
type PlayerSummary struct {
	Name         string             `json:"name"`
	Score        int                `json:"score"`
	WordsPlayed  int                `json:"wordsPlayed"`
	WordPoints   int                `json:"wordPoints"`
	AverageScore float64            `json:"averageScore"`
	BestWord     *game.HistoryEntry `json:"bestWord,omitempty"`
}

// Summary is the statistics view for a whole game.
type Summary struct {
	Player1            PlayerSummary `json:"player1"`
	Player2            PlayerSummary `json:"player2"`
	TotalWords         int           `json:"totalWords"`
	LengthDistribution map[int]int   `json:"lengthDistribution"`
}

// Of returns the summary for p.
func (s Summary) Of(p game.Player) PlayerSummary {
	if p == game.Player2 {
		return s.Player2
	}
	return s.Player1
}

// Summarize computes per-player statistics for s.
func Summarize(s game.State) Summary {
	out := Summary{
		Player1:            PlayerSummary{Name: s.Names.Player1, Score: s.Scores.Player1},
		Player2:            PlayerSummary{Name: s.Names.Player2, Score: s.Scores.Player2},
		LengthDistribution: LengthDistribution(s.History),
	}
	for i, h := range s.History {
		if h.IsTurnSummary {
			continue
		}
		ps := &out.Player1
		if h.Player == game.Player2 {
			ps = &out.Player2
		}
		ps.WordsPlayed++
		ps.WordPoints += h.Points
		if ps.BestWord == nil || h.Points > ps.BestWord.Points {
			ps.BestWord = &s.History[i]
		}
		out.TotalWords++
	}
	for _, ps := range []*PlayerSummary{&out.Player1, &out.Player2} {
		if ps.WordsPlayed > 0 {
			ps.AverageScore = float64(ps.WordPoints) / float64(ps.WordsPlayed)
		}
	}
	return out
}

// LengthDistribution counts word plays by word length. Entries without a
// purely alphabetic word (score-only entries) are skipped.
func LengthDistribution(history []game.HistoryEntry) map[int]int {
	dist := make(map[int]int)
	for _, h := range history {
		if h.IsTurnSummary || !isWord(h.Word) {
			continue
		}
		dist[len(h.Word)]++
	}
	return dist
}

// Point is one step of the score timeline.
type Point struct {
	Index     int         `json:"index"`
	Player    game.Player `json:"player"`
	Word      string      `json:"word"`
	Points    int         `json:"points"`
	Player1   int         `json:"player1"`
	Player2   int         `json:"player2"`
	Timestamp string      `json:"timestamp"`
}

// Timeline replays the history from the setup scores and records both
// running totals after each word play.
func Timeline(s game.State) []Point {
	running := s.Starting
	out := make([]Point, 0, len(s.History))
	for _, h := range s.History {
		if h.IsTurnSummary {
			continue
		}
		running = running.Add(h.Player, h.Points)
		out = append(out, Point{
			Index:     len(out),
			Player:    h.Player,
			Word:      h.Word,
			Points:    h.Points,
			Player1:   running.Player1,
			Player2:   running.Player2,
			Timestamp: h.Timestamp,
		})
	}
	return out
}

// isWord reports whether w is non-empty and only A–Z letters.
func isWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
