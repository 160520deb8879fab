// internal/httpserver/server.go
//
// HTTP server wiring for the scorekeeper backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging).
//   - Public endpoints: "/", "/health", score preview and word lookup.
//   - Game endpoints under /games: reads are open, mutations require the
//     table token handed out when the game was created.
//   - Live websocket feed of committed game states.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the table cookie works).
//   - The websocket route is mounted outside the timeout group; it lives as
//     long as the client stays connected.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/config"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/session"
)

// Server bundles the router, the session manager and the token signer.
type Server struct {
	r      *chi.Mux
	games  *session.Manager
	tokens *tableTokens
	cfg    *config.Config
	log    zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, games *session.Manager, logger zerolog.Logger) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		games:  games,
		tokens: newTableTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		cfg:    cfg,
		log:    logger.With().Str("component", "http").Logger(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)               // add X-Request-ID
	s.r.Use(chimw.RealIP)                  // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger(s.log))          // one line per request
	s.r.Use(chimw.Recoverer)               // recover from panics
	s.r.Use(cors(cfg.Server.ClientOrigin)) // credentials-friendly CORS

	// live feed: no timeout, no JSON content type
	s.r.Get("/games/{id}/live", s.handleLive)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout)) // bound handler time
		r.Use(jsonContentType)                          // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"scorekeeper-go","endpoints":["/health","/score","/words/{word}","/games"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		// --- stateless helpers ---
		r.Get("/score", s.handleScorePreview)
		r.Get("/words/{word}", s.handleWord)

		// --- games ---
		r.Get("/games", s.handleListGames)
		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Get("/stats", s.handleStats)
			r.Get("/timeline", s.handleTimeline)
			r.Get("/export.csv", s.handleExport)

			r.Group(func(r chi.Router) {
				r.Use(s.requireTable)

				r.Delete("/", s.handleDeleteGame)
				r.Post("/setup", s.handleSetup)
				r.Put("/draft", s.handleDraft)
				r.Post("/draft/letters/{index}", s.handleCycleLetter)
				r.Post("/draft/word-multiplier", s.handleCycleWord)
				r.Post("/draft/validate", s.handleValidateDraft)
				r.Post("/score", s.handleSingleScore)
				r.Post("/turn/words", s.handleAddWord)
				r.Delete("/turn/words/{index}", s.handleRemoveWord)
				r.Post("/turn/complete", s.handleCompleteTurn)
				r.Post("/switch", s.handleSwitch)
				r.Post("/undo", s.handleUndo)
				r.Put("/scores", s.handleEditScores)
				r.Post("/reset", s.handleReset)
				r.Put("/status", s.handleStatus)
			})
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }
