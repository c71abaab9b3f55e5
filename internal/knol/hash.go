package knol

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/smartlearner/internal/domain"
)

// Normalize joins the card's front and back text after cleaning each part.
// Each side is trimmed, lowercased and has its line endings normalized.
// Audio handles and scheduling state do not take part.
func Normalize(card domain.Card) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return strings.TrimSpace(p)
	}

	// A newline keeps "ab"+"c" and "a"+"bc" apart.
	return normalizePart(card.Front.Text) + "\n" + normalizePart(card.Back.Text)
}

// Hash returns the SHA-256 of the normalized card as a hex string.
func Hash(card domain.Card) string {
	hashBytes := sha256.Sum256([]byte(Normalize(card)))
	return fmt.Sprintf("%x", hashBytes)
}

// Index returns the set of hashes of every card in deck.
func Index(deck *domain.Deck) map[string]bool {
	seen := make(map[string]bool, deck.Len())
	for _, card := range deck.Cards {
		seen[Hash(card)] = true
	}
	return seen
}
