// internal/scoring/letters.go
//
// Letter value table for the scoring engine.
// English tile values indexed A–Z, with the house value for I (8, so that
// QUIZ scores 29). The table is fixed at compile time and never mutated.

package scoring

// letterValues holds the point value of each letter, A at index 0.
var letterValues = [26]int{
	1,  // A
	3,  // B
	3,  // C
	2,  // D
	1,  // E
	4,  // F
	2,  // G
	4,  // H
	8,  // I (house value)
	8,  // J
	5,  // K
	1,  // L
	3,  // M
	1,  // N
	1,  // O
	3,  // P
	10, // Q
	1,  // R
	1,  // S
	1,  // T
	1,  // U
	4,  // V
	4,  // W
	8,  // X
	4,  // Y
	10, // Z
}

// LetterValue returns the tile value of r (case-insensitive).
// Anything outside A–Z is worth 0.
func LetterValue(r rune) int {
	switch {
	case r >= 'A' && r <= 'Z':
		return letterValues[r-'A']
	case r >= 'a' && r <= 'z':
		return letterValues[r-'a']
	default:
		return 0
	}
}
