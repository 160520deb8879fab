package httpserver

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/scoring"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/stats"
)

type scorePreviewRes struct {
	Word        string              `json:"word"`
	Multipliers scoring.Multipliers `json:"multipliers"`
	scoring.Suggestion
}

// handleScorePreview computes base and bonus values without touching a game.
// Query: word, letters (comma-separated multipliers), wordMultiplier, tiles.
func (s *Server) handleScorePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	word := strings.ToUpper(strings.TrimSpace(q.Get("word")))

	m := scoring.Plain(len([]rune(word)))
	if raw := q.Get("letters"); raw != "" {
		for i, part := range strings.Split(raw, ",") {
			if i < len(m.Letters) {
				m.Letters[i] = clampMultiplier(scoring.ParsePoints(part))
			}
		}
	}
	m.Word = clampMultiplier(scoring.ParsePoints(q.Get("wordMultiplier")))
	m.Bingo = scoring.IsBingo(scoring.ParsePoints(q.Get("tiles")))

	writeJSON(w, http.StatusOK, scorePreviewRes{Word: word, Multipliers: m, Suggestion: scoring.Suggest(word, m)})
}

func clampMultiplier(n int) int { return min(scoring.MaxMultiplier, max(1, n)) }

func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.games.Validate(r.Context(), chi.URLParam(r, "word")))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(g))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Timeline(g))
}

// handleExport renders the full history as CSV: Time, Player, Word, Points.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scores-`+g.ID+`.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Time", "Player", "Word", "Points"})
	for _, row := range stats.ExportRows(g) {
		_ = cw.Write([]string{row.Time, row.Player, row.Word, strconv.Itoa(row.Points)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.log.Warn().Err(err).Str("game", g.ID).Msg("csv export")
	}
}
