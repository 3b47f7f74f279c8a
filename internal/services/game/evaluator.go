package game

import (
	"strings"

	"github.com/majnugame/majnu-go/internal/model"
)

// Placeholder is the character shown for unrevealed letters
const Placeholder = '_'

// Mask replaces every ASCII letter of the answer with the placeholder,
// preserving non-alphabetic characters (spaces, hyphens) verbatim.
func Mask(answer string) string {
	var b strings.Builder
	b.Grow(len(answer))
	for _, r := range answer {
		if isLetter(r) {
			b.WriteRune(Placeholder)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Reveal returns the mask with every position matching the guessed letter
// uncovered. Matching is case-insensitive; positions already revealed are
// left untouched.
func Reveal(mask, answer, letter string) string {
	if len(letter) != 1 {
		return mask
	}
	target := lower(rune(letter[0]))

	maskRunes := []rune(mask)
	answerRunes := []rune(answer)
	for i, r := range answerRunes {
		if i >= len(maskRunes) {
			break
		}
		if lower(r) == target {
			maskRunes[i] = r
		}
	}
	return string(maskRunes)
}

// IsWin returns true once the mask fully matches the answer
func IsWin(mask, answer string) bool {
	return mask == answer
}

// IsLoss returns true once the wrong-guess count reaches the limit
func IsLoss(wrongCount int) bool {
	return wrongCount >= model.MaxWrongGuesses
}

// NormalizeLetter validates a raw guess and returns it as a lowercase
// single-letter string. Guesses must be exactly one ASCII letter.
func NormalizeLetter(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != 1 {
		return "", model.ErrInvalidLetter
	}
	r := rune(trimmed[0])
	if !isLetter(r) {
		return "", model.ErrInvalidLetter
	}
	return string(lower(r)), nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
