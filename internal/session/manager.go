// internal/session/manager.go
//
// Session manager: the adapter that owns live games.
// Responsibilities:
//   - Create games (ID, optional edit PIN) and load/save them through a Store.
//   - Apply game operations atomically: load, transition, save and publish
//     happen under one lock, so an undo snapshot and the mutation it guards
//     can never interleave with another mutation.
//   - Validate words outside the lock and drop superseded results.
//   - Fan committed states out to live subscribers.
//
// Notes:
//   - The game package never returns errors; everything that can fail here
//     (unknown game, store failures, wrong PIN, invalid word) is adapter-level.

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/scoring"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/store"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/words"
)

var (
	// ErrNotFound is returned for unknown game IDs.
	ErrNotFound = errors.New("game not found")
	// ErrPinMismatch is returned when a locked edit is attempted with the wrong PIN.
	ErrPinMismatch = errors.New("pin mismatch")
	// ErrInvalidWord is returned when word checking is on and a word fails it.
	ErrInvalidWord = errors.New("invalid word")
)

// Options tune a Manager.
type Options struct {
	// RequireValidWords rejects words that fail validation before they are
	// added to a turn.
	RequireValidWords bool
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Manager owns game instances and serialises their mutations.
type Manager struct {
	store     store.Store
	validator *words.Validator
	opts      Options
	log       zerolog.Logger
	live      *hub

	mu       sync.Mutex               // guards load→apply→save
	trackMu  sync.Mutex               // guards trackers
	trackers map[string]*words.Tracker // latest draft validation per game
}

// NewManager builds a Manager.
func NewManager(st store.Store, v *words.Validator, logger zerolog.Logger, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		store:     st,
		validator: v,
		opts:      opts,
		log:       logger.With().Str("component", "session").Logger(),
		live:      newHub(),
		trackers:  make(map[string]*words.Tracker),
	}
}

// EntryInput carries an optional word and points value. Nil fields fall
// back to the game's draft.
type EntryInput struct {
	Word   *string `json:"word"`
	Points *string `json:"points"`
}

// DraftInput updates the draft. Nil fields are left alone.
type DraftInput struct {
	Word   *string `json:"word"`
	Points *string `json:"points"`
	Tiles  *int    `json:"tilesUsed"`
}

// Validation is a validation result plus whether a newer request replaced it.
type Validation struct {
	words.Result
	Stale bool `json:"stale"`
}

// Create starts a new game from setup input. A non-empty pin locks manual
// score edits.
func (m *Manager) Create(ctx context.Context, in game.SetupInput, pin string) (game.State, error) {
	now := m.opts.Now()
	s := game.Setup(game.New(uuid.NewString(), now), in)
	if pin = strings.TrimSpace(pin); pin != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return game.State{}, fmt.Errorf("hash pin: %w", err)
		}
		s.PinHash = string(h)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(ctx, s); err != nil {
		return game.State{}, fmt.Errorf("create game: %w", err)
	}
	m.log.Info().Str("game", s.ID).Str("p1", s.Names.Player1).Str("p2", s.Names.Player2).Msg("game created")
	return s, nil
}

// Get loads a game.
func (m *Manager) Get(ctx context.Context, id string) (game.State, error) {
	return m.load(ctx, id)
}

// List returns recently updated games.
func (m *Manager) List(ctx context.Context, limit int) ([]game.State, error) {
	return m.store.List(ctx, limit)
}

// Delete removes a game and disconnects its live subscribers.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.load(ctx, id); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.live.closeAll(id)
	m.trackMu.Lock()
	delete(m.trackers, id)
	m.trackMu.Unlock()
	m.log.Info().Str("game", id).Msg("game deleted")
	return nil
}

// Setup re-enters names and starting scores after a reset.
func (m *Manager) Setup(ctx context.Context, id string, in game.SetupInput) (game.State, error) {
	return m.apply(ctx, id, "setup", func(s game.State) game.State {
		return game.Setup(s, in)
	})
}

// UpdateDraft changes the draft word, points override and/or tile count.
func (m *Manager) UpdateDraft(ctx context.Context, id string, in DraftInput) (game.State, error) {
	return m.apply(ctx, id, "draft", func(s game.State) game.State {
		if in.Word != nil {
			s = game.SetDraftWord(s, *in.Word)
		}
		if in.Points != nil {
			s = game.SetDraftPoints(s, *in.Points)
		}
		if in.Tiles != nil {
			s = game.SetTilesUsed(s, *in.Tiles)
		}
		return s
	})
}

// CycleLetter advances the multiplier of one draft letter.
func (m *Manager) CycleLetter(ctx context.Context, id string, index int) (game.State, error) {
	return m.apply(ctx, id, "cycle_letter", func(s game.State) game.State {
		return game.CycleLetterMultiplier(s, index)
	})
}

// CycleWordMultiplier advances the draft's word multiplier.
func (m *Manager) CycleWordMultiplier(ctx context.Context, id string) (game.State, error) {
	return m.apply(ctx, id, "cycle_word", game.CycleWordMultiplier)
}

// Validate checks a free-standing word.
func (m *Manager) Validate(ctx context.Context, word string) words.Result {
	return m.validator.Validate(ctx, word)
}

// ValidateDraft validates the game's current draft word. If another
// validation for the same game started meanwhile, the result is marked stale
// and must not be shown.
func (m *Manager) ValidateDraft(ctx context.Context, id string) (Validation, error) {
	s, err := m.load(ctx, id)
	if err != nil {
		return Validation{}, err
	}
	tr := m.tracker(id)
	tk := tr.Begin(s.Draft.Word)
	res := m.validator.Validate(ctx, tk.Word)
	if !tr.Finish(tk) {
		m.log.Debug().Str("game", id).Str("word", tk.Word).Msg("dropping stale validation")
		return Validation{Result: res, Stale: true}, nil
	}
	return Validation{Result: res}, nil
}

// ValidationPending reports whether a draft validation is in flight.
func (m *Manager) ValidationPending(id string) bool {
	return m.tracker(id).Pending()
}

// AddSingleScore commits one score for the current player.
func (m *Manager) AddSingleScore(ctx context.Context, id string, in EntryInput) (game.State, error) {
	return m.apply(ctx, id, "single_score", func(s game.State) game.State {
		word, points := resolveEntry(s, in)
		return game.AddSingleScore(s, word, points, m.opts.Now())
	})
}

// AddWord adds a word to the current turn. With RequireValidWords the word is
// validated first, outside the lock.
func (m *Manager) AddWord(ctx context.Context, id string, in EntryInput) (game.State, error) {
	if m.opts.RequireValidWords {
		word := ""
		if in.Word != nil {
			word = *in.Word
		} else {
			s, err := m.load(ctx, id)
			if err != nil {
				return game.State{}, err
			}
			word = s.Draft.Word
		}
		// blank words fall through to the game package, which ignores them
		if word = strings.TrimSpace(word); word != "" {
			if res := m.validator.Validate(ctx, word); !res.Valid {
				return game.State{}, fmt.Errorf("%w: %q", ErrInvalidWord, word)
			}
		}
	}
	return m.apply(ctx, id, "add_word", func(s game.State) game.State {
		word, points := resolveEntry(s, in)
		return game.AddWordToTurn(s, word, points)
	})
}

// RemoveWord drops one word from the current turn.
func (m *Manager) RemoveWord(ctx context.Context, id string, index int) (game.State, error) {
	return m.apply(ctx, id, "remove_word", func(s game.State) game.State {
		return game.RemoveWordFromTurn(s, index)
	})
}

// CompleteTurn commits the current turn.
func (m *Manager) CompleteTurn(ctx context.Context, id string) (game.State, error) {
	return m.apply(ctx, id, "complete_turn", func(s game.State) game.State {
		return game.CompleteTurn(s, m.opts.Now())
	})
}

// SwitchTurn passes play without scoring.
func (m *Manager) SwitchTurn(ctx context.Context, id string) (game.State, error) {
	return m.apply(ctx, id, "switch", game.SwitchTurn)
}

// Undo reverts the latest committed score.
func (m *Manager) Undo(ctx context.Context, id string) (game.State, error) {
	return m.apply(ctx, id, "undo", game.Undo)
}

// EditScores overwrites both scores. Games created with a PIN require it.
// Unparseable scores become 0.
func (m *Manager) EditScores(ctx context.Context, id, pin, player1, player2 string) (game.State, error) {
	s, err := m.load(ctx, id)
	if err != nil {
		return game.State{}, err
	}
	if err := checkPin(s, pin); err != nil {
		return game.State{}, err
	}
	p1, p2 := scoring.ParsePoints(player1), scoring.ParsePoints(player2)
	return m.apply(ctx, id, "edit_scores", func(s game.State) game.State {
		return game.EditScores(s, p1, p2)
	})
}

// Reset clears the game back to setup.
func (m *Manager) Reset(ctx context.Context, id string) (game.State, error) {
	return m.apply(ctx, id, "reset", game.Reset)
}

// SetStatus marks the game active, paused or final.
func (m *Manager) SetStatus(ctx context.Context, id string, status game.Status) (game.State, error) {
	return m.apply(ctx, id, "status", func(s game.State) game.State {
		return game.SetStatus(s, status)
	})
}

// Subscribe streams every committed state of game id until cancel is called.
func (m *Manager) Subscribe(id string) (<-chan game.State, func()) {
	ch, cancel := m.live.subscribe(id)
	m.log.Debug().Str("game", id).Int("watchers", m.live.count(id)).Msg("live subscriber added")
	return ch, cancel
}

// apply runs fn on the stored game and saves the result, all under m.mu.
func (m *Manager) apply(ctx context.Context, id, op string, fn func(game.State) game.State) (game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, err := m.load(ctx, id)
	if err != nil {
		return game.State{}, err
	}
	next := fn(cur)
	next.UpdatedAt = m.opts.Now()
	if err := m.store.Save(ctx, next); err != nil {
		return game.State{}, fmt.Errorf("save game %s: %w", id, err)
	}
	m.live.publish(next)

	m.log.Debug().
		Str("game", id).
		Str("op", op).
		Int("p1", next.Scores.Player1).
		Int("p2", next.Scores.Player2).
		Int("current", int(next.Current)).
		Msg("game updated")
	return next, nil
}

func (m *Manager) load(ctx context.Context, id string) (game.State, error) {
	s, err := m.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return game.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return game.State{}, fmt.Errorf("load game %s: %w", id, err)
	}
	return s, nil
}

func (m *Manager) tracker(id string) *words.Tracker {
	m.trackMu.Lock()
	defer m.trackMu.Unlock()
	tr, ok := m.trackers[id]
	if !ok {
		tr = &words.Tracker{}
		m.trackers[id] = tr
	}
	return tr
}

// resolveEntry fills missing input from the draft.
func resolveEntry(s game.State, in EntryInput) (word, points string) {
	word, points = s.Draft.Word, s.Draft.Points
	if in.Word != nil {
		word = *in.Word
	}
	if in.Points != nil {
		points = *in.Points
	}
	return word, points
}

func checkPin(s game.State, pin string) error {
	if s.PinHash == "" {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(s.PinHash), []byte(strings.TrimSpace(pin))) != nil {
		return ErrPinMismatch
	}
	return nil
}
