// internal/scoring/engine.go
//
// Pure scoring functions for a single word.
// Responsibilities:
//   - Base value: sum of letter values.
//   - Bonus value: per-letter multipliers, then the word multiplier, then the
//     flat bingo bonus (which is never multiplied).
//   - Multiplier cycling for the 1x/2x/3x controls.
//   - Resolving the points actually credited when the user may override them.
//
// Nothing in this file returns an error: non-letters score 0 and unparseable
// numbers resolve to 0. Rejecting bad words is the validator's job.

package scoring

import (
	"math"
	"strconv"
	"strings"
)

const (
	// BingoBonus is added once when every tile of the rack is used.
	BingoBonus = 50
	// RackSize is the number of tiles a player holds.
	RackSize = 7
	// MaxMultiplier is the largest letter or word multiplier.
	MaxMultiplier = 3
)

// Multipliers is the bonus state attached to one word.
// Letters has one entry per letter position; missing entries count as 1.
type Multipliers struct {
	Letters []int `json:"letterMultipliers"`
	Word    int   `json:"wordMultiplier"`
	Bingo   bool  `json:"bingoBonus"`
}

// Plain returns multipliers with no bonuses for a word of length n.
func Plain(n int) Multipliers {
	letters := make([]int, n)
	for i := range letters {
		letters[i] = 1
	}
	return Multipliers{Letters: letters, Word: 1}
}

// Clone returns a copy that shares no memory with m.
func (m Multipliers) Clone() Multipliers {
	out := m
	if m.Letters != nil {
		out.Letters = append([]int(nil), m.Letters...)
	}
	return out
}

// Suggestion carries both candidate scores so a caller can offer a choice.
type Suggestion struct {
	Base        int `json:"base"`
	WithBonuses int `json:"withBonuses"`
}

// WordBaseValue sums the letter values of word.
func WordBaseValue(word string) int {
	total := 0
	for _, r := range strings.ToUpper(word) {
		total += LetterValue(r)
	}
	return total
}

// WordBonusValue scores word with letter multipliers, a word multiplier and
// the optional bingo bonus. The result is never negative.
func WordBonusValue(word string, letterMultipliers []int, wordMultiplier int, bingo bool) int {
	letterTotal := 0
	for i, r := range []rune(strings.ToUpper(word)) {
		lm := 1
		if i < len(letterMultipliers) && letterMultipliers[i] > 0 {
			lm = letterMultipliers[i]
		}
		letterTotal += LetterValue(r) * lm
	}

	if wordMultiplier < 1 {
		wordMultiplier = 1
	}
	total := int(math.Round(float64(letterTotal) * float64(wordMultiplier)))
	if bingo {
		total += BingoBonus
	}
	if total < 0 {
		return 0
	}
	return total
}

// Score applies m to word.
func Score(word string, m Multipliers) int {
	return WordBonusValue(word, m.Letters, m.Word, m.Bingo)
}

// Suggest returns the base and bonus-adjusted values of word.
func Suggest(word string, m Multipliers) Suggestion {
	return Suggestion{
		Base:        WordBaseValue(word),
		WithBonuses: Score(word, m),
	}
}

// IsBingo reports whether placing tiles uses the whole rack.
func IsBingo(tiles int) bool { return tiles == RackSize }

// CycleMultiplier advances a multiplier control 1 → 2 → 3 → 1.
// Out-of-range values restart the cycle at 1.
func CycleMultiplier(m int) int {
	if m < 1 || m >= MaxMultiplier {
		return 1
	}
	return m + 1
}

// ParsePoints parses a points field; anything unparseable is 0.
func ParsePoints(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ResolveFinalPoints picks the points credited for a word.
// Precedence: an explicit integer override, then the computed value, then 0.
// Negative overrides are clamped to 0.
func ResolveFinalPoints(override string, computed *int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(override)); err == nil {
		return max(0, n)
	}
	if computed != nil {
		return *computed
	}
	return 0
}
