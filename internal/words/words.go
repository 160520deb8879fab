// internal/words/words.go
//
// Word validation for score entry.
//
// Responsibilities:
//   - Normalize input (trim, uppercase for display).
//   - Ask a definition source whether the word exists and attach the first
//     definition found.
//   - Fall back to a local rule when the source is unavailable or has no
//     entry: letters only, at least two of them.
//
// Validate never returns an error. Every failure path ends in a Result whose
// Source says which rule decided it.

package words

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// MinLength is the shortest word the local rule accepts.
const MinLength = 2

// Source names the rule that produced a Result.
type Source string

const (
	SourceNone       Source = ""           // empty input, nothing consulted
	SourceDictionary Source = "dictionary" // definition source had an entry
	SourceLocal      Source = "local"      // fallback rule
)

// Definition is what a definition source knows about a word.
type Definition struct {
	Found        bool   `json:"found"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Text         string `json:"definition,omitempty"`
}

// Lookup is the external definition capability.
// Implementations may be backed by HTTP (Client), a cache (CachedLookup), etc.
type Lookup interface {
	LookupDefinition(ctx context.Context, word string) (Definition, error)
}

// Result is the outcome of validating one word.
type Result struct {
	Valid      bool   `json:"valid"`
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
	Source     Source `json:"source"`
}

// Validator checks words against a Lookup with a local fallback.
// It keeps no per-call state, so concurrent calls are independent.
type Validator struct {
	lookup Lookup
	log    zerolog.Logger
}

// NewValidator builds a Validator. lookup may be nil, in which case only the
// local rule is used.
func NewValidator(lookup Lookup, logger zerolog.Logger) *Validator {
	return &Validator{lookup: lookup, log: logger.With().Str("component", "validator").Logger()}
}

// Validate decides whether word is playable and, when possible, describes it.
func (v *Validator) Validate(ctx context.Context, word string) Result {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return Result{Source: SourceNone}
	}
	norm := strings.ToUpper(trimmed)

	if v.lookup != nil {
		def, err := v.lookup.LookupDefinition(ctx, trimmed)
		switch {
		case err != nil:
			v.log.Debug().Err(err).Str("word", norm).Msg("lookup failed, using local rule")
		case def.Found:
			return Result{Valid: true, Word: norm, Definition: FormatDefinition(def), Source: SourceDictionary}
		}
	}

	return Result{Valid: LocallyValid(trimmed), Word: norm, Source: SourceLocal}
}

// LocallyValid applies the fallback rule: ASCII letters only, length >= 2.
func LocallyValid(w string) bool {
	return len(w) >= MinLength && isAlpha(w)
}

// FormatDefinition renders d as "(partOfSpeech) definition", or whichever
// half is present.
func FormatDefinition(d Definition) string {
	pos := strings.TrimSpace(d.PartOfSpeech)
	text := strings.TrimSpace(d.Text)
	switch {
	case pos != "" && text != "":
		return "(" + pos + ") " + text
	case pos != "":
		return "(" + pos + ")"
	default:
		return text
	}
}

// isAlpha reports whether s is all ASCII letters, either case.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
