// internal/game/draft.go
//
// The draft is the word currently being entered: its text, an optional
// points override and the bonus controls (letter multipliers, word
// multiplier, tiles placed). Bingo is never set directly; it is derived from
// the tile count every time the count changes.

package game

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/scoring"
)

// Draft holds the transient input for the next word.
type Draft struct {
	Word              string `json:"word"`
	Points            string `json:"points"` // raw override text, may be empty
	LetterMultipliers []int  `json:"letterMultipliers"`
	WordMultiplier    int    `json:"wordMultiplier"`
	TilesUsed         int    `json:"tilesUsed"`
	Bingo             bool   `json:"bingo"`
}

func newDraft() Draft { return Draft{WordMultiplier: 1} }

func (d Draft) clone() Draft {
	d.LetterMultipliers = slices.Clone(d.LetterMultipliers)
	return d
}

// Multipliers sizes the draft's bonus state to word.
func (d Draft) Multipliers(word string) scoring.Multipliers {
	n := utf8.RuneCountInString(word)
	m := scoring.Plain(n)
	for i := 0; i < n && i < len(d.LetterMultipliers); i++ {
		if d.LetterMultipliers[i] > 0 {
			m.Letters[i] = d.LetterMultipliers[i]
		}
	}
	if d.WordMultiplier > 0 {
		m.Word = d.WordMultiplier
	}
	m.Bingo = d.Bingo
	return m
}

// SetDraftWord replaces the word being entered.
func SetDraftWord(s State, word string) State {
	if s.Phase != PhaseActive {
		return s
	}
	next := s.clone()
	next.Draft.Word = strings.ToUpper(strings.TrimSpace(word))
	return next
}

// SetDraftPoints replaces the raw points override.
func SetDraftPoints(s State, points string) State {
	if s.Phase != PhaseActive {
		return s
	}
	next := s.clone()
	next.Draft.Points = strings.TrimSpace(points)
	return next
}

// CycleLetterMultiplier advances the multiplier of letter i of the draft
// word. Positions outside the word are ignored.
func CycleLetterMultiplier(s State, i int) State {
	if s.Phase != PhaseActive || i < 0 || i >= utf8.RuneCountInString(s.Draft.Word) {
		return s
	}
	next := s.clone()
	for len(next.Draft.LetterMultipliers) <= i {
		next.Draft.LetterMultipliers = append(next.Draft.LetterMultipliers, 1)
	}
	next.Draft.LetterMultipliers[i] = scoring.CycleMultiplier(next.Draft.LetterMultipliers[i])
	return next
}

// CycleWordMultiplier advances the draft's word multiplier.
func CycleWordMultiplier(s State) State {
	if s.Phase != PhaseActive {
		return s
	}
	next := s.clone()
	next.Draft.WordMultiplier = scoring.CycleMultiplier(next.Draft.WordMultiplier)
	return next
}

// SetTilesUsed records how many rack tiles the draft word uses (clamped to
// 0..7) and re-derives the bingo flag.
func SetTilesUsed(s State, n int) State {
	if s.Phase != PhaseActive {
		return s
	}
	next := s.clone()
	next.Draft.TilesUsed = max(0, min(n, scoring.RackSize))
	next.Draft.Bingo = scoring.IsBingo(next.Draft.TilesUsed)
	return next
}

// Suggestion previews the draft word's base and bonus-adjusted values.
func (d Draft) Suggestion() scoring.Suggestion {
	return scoring.Suggest(d.Word, d.Multipliers(d.Word))
}
