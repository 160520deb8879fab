// internal/httpserver/games.go
//
// Game endpoints. Every mutating handler decodes its body, calls the session
// manager and answers with the public state of the game.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/session"
)

// createGameReq is the setup form plus an optional edit PIN.
type createGameReq struct {
	game.SetupInput
	Pin string `json:"pin"`
}

type createGameRes struct {
	ID    string   `json:"id"`
	Token string   `json:"token"`
	State stateRes `json:"state"`
}

// gameListItem is one row of GET /games.
type gameListItem struct {
	ID        string      `json:"id"`
	Names     game.Names  `json:"names"`
	Scores    game.Scores `json:"scores"`
	Phase     game.Phase  `json:"phase"`
	Status    game.Status `json:"status"`
	UpdatedAt string      `json:"updatedAt"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.Create(r.Context(), req.SetupInput, req.Pin)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	tok, exp, err := s.tokens.sign(g.ID)
	if err != nil {
		s.log.Error().Err(err).Str("game", g.ID).Msg("sign table token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	setTableCookie(w, s.cfg.Auth.CookieName, g.ID, tok, exp)
	writeJSON(w, http.StatusCreated, createGameRes{ID: g.ID, Token: tok, State: publicState(g)})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.games.List(r.Context(), limit)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	out := make([]gameListItem, 0, len(list))
	for _, g := range list {
		out = append(out, gameListItem{
			ID:        g.ID,
			Names:     g.Names,
			Scores:    g.Scores,
			Phase:     g.Phase,
			Status:    g.Status,
			UpdatedAt: g.UpdatedAt.UTC().Format(game.TimestampLayout),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	respondState(w, r, g, err)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.games.Delete(r.Context(), id); err != nil {
		writeSessionError(w, r, err)
		return
	}
	clearTableCookie(w, s.cfg.Auth.CookieName, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var in game.SetupInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.Setup(r.Context(), chi.URLParam(r, "id"), in)
	respondState(w, r, g, err)
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	var in session.DraftInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.UpdateDraft(r.Context(), chi.URLParam(r, "id"), in)
	respondState(w, r, g, err)
}

func (s *Server) handleCycleLetter(w http.ResponseWriter, r *http.Request) {
	i, ok := indexParam(r, "index")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_index")
		return
	}
	g, err := s.games.CycleLetter(r.Context(), chi.URLParam(r, "id"), i)
	respondState(w, r, g, err)
}

func (s *Server) handleCycleWord(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.CycleWordMultiplier(r.Context(), chi.URLParam(r, "id"))
	respondState(w, r, g, err)
}

func (s *Server) handleValidateDraft(w http.ResponseWriter, r *http.Request) {
	v, err := s.games.ValidateDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSingleScore(w http.ResponseWriter, r *http.Request) {
	var in session.EntryInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.AddSingleScore(r.Context(), chi.URLParam(r, "id"), in)
	respondState(w, r, g, err)
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var in session.EntryInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.AddWord(r.Context(), chi.URLParam(r, "id"), in)
	respondState(w, r, g, err)
}

func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	i, ok := indexParam(r, "index")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_index")
		return
	}
	g, err := s.games.RemoveWord(r.Context(), chi.URLParam(r, "id"), i)
	respondState(w, r, g, err)
}

func (s *Server) handleCompleteTurn(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.CompleteTurn(r.Context(), chi.URLParam(r, "id"))
	respondState(w, r, g, err)
}

func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.SwitchTurn(r.Context(), chi.URLParam(r, "id"))
	respondState(w, r, g, err)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Undo(r.Context(), chi.URLParam(r, "id"))
	respondState(w, r, g, err)
}

// editScoresReq carries the manual score edit. Scores arrive as text, like
// the setup form.
type editScoresReq struct {
	Pin     string `json:"pin"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

func (s *Server) handleEditScores(w http.ResponseWriter, r *http.Request) {
	var req editScoresReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.EditScores(r.Context(), chi.URLParam(r, "id"), req.Pin, req.Player1, req.Player2)
	respondState(w, r, g, err)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Reset(r.Context(), chi.URLParam(r, "id"))
	respondState(w, r, g, err)
}

type statusReq struct {
	Status game.Status `json:"status"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "bad_status")
		return
	}
	g, err := s.games.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	respondState(w, r, g, err)
}
