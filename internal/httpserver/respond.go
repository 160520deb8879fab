package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/scoring"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/session"
)

// stateRes is the public view of a game. The PIN hash and the raw undo
// stack never leave the server; derived flags are added for clients.
type stateRes struct {
	game.State
	EditLocked   bool               `json:"editLocked"`
	UndoDepth    int                `json:"undoDepth"`
	CanUndo      bool               `json:"canUndo"`
	CanSwitch    bool               `json:"canSwitch"`
	CanComplete  bool               `json:"canComplete"`
	CanAddSingle bool               `json:"canAddSingle"`
	TurnTotal    int                `json:"turnTotal"`
	Suggestion   scoring.Suggestion `json:"suggestion"`
}

func publicState(s game.State) stateRes {
	res := stateRes{
		EditLocked:   s.PinHash != "",
		UndoDepth:    len(s.Undo),
		CanUndo:      game.CanUndo(s),
		CanSwitch:    game.CanSwitch(s),
		CanComplete:  game.CanComplete(s),
		CanAddSingle: game.CanAddSingle(s),
		TurnTotal:    game.TurnTotal(s.Turn),
		Suggestion:   s.Draft.Suggestion(),
	}
	s.PinHash = ""
	s.Undo = nil
	res.State = s
	return res
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeSessionError maps session errors to status codes.
func writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, session.ErrPinMismatch):
		writeError(w, http.StatusForbidden, "pin_mismatch")
	case errors.Is(err, session.ErrInvalidWord):
		writeError(w, http.StatusUnprocessableEntity, "invalid_word")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("session error")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// respondState writes either the new state or the mapped error.
func respondState(w http.ResponseWriter, r *http.Request, s game.State, err error) {
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicState(s))
}

// decode reads a JSON body into v; an empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// indexParam parses a non-negative integer path parameter.
func indexParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
