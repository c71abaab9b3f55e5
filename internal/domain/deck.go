package domain

import (
	"fmt"
	"strings"

	"github.com/conorfennell/smartlearner/internal/calendar"
)

// Deck is a named, ordered collection of cards.
//
// Cards are addressed by position. A position is only meaningful until the
// next Remove: removal moves the last card into the freed slot, so any
// position obtained earlier must be looked up again.
type Deck struct {
	Name  string
	Cards []Card
}

// Match is a search hit: the card position and the text of the searched side.
type Match struct {
	Position int
	Text     string
}

// NewDeck creates an empty deck.
func NewDeck(name string) (*Deck, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyDeckName
	}
	return &Deck{Name: name}, nil
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.Cards)
}

// Add appends card and returns its position.
func (d *Deck) Add(card Card) int {
	d.Cards = append(d.Cards, card)
	return len(d.Cards) - 1
}

// Card returns the card at position for in-place mutation.
func (d *Deck) Card(position int) (*Card, error) {
	if position < 0 || position >= len(d.Cards) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidPosition, position, len(d.Cards))
	}
	return &d.Cards[position], nil
}

// Remove deletes the card at position by moving the last card into its slot.
func (d *Deck) Remove(position int) error {
	if position < 0 || position >= len(d.Cards) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPosition, position, len(d.Cards))
	}
	last := len(d.Cards) - 1
	d.Cards[position] = d.Cards[last]
	d.Cards[last] = Card{}
	d.Cards = d.Cards[:last]
	return nil
}

// DueCard returns the position of the first due card in sequence order.
//
// skip is the position of the card that was just reviewed, or -1. If that
// card is still due it is only returned when no other card is due, so a card
// answered wrongly is not shown twice in a row while other work remains.
func (d *Deck) DueCard(today calendar.Date, skip int) (int, bool) {
	deferred := false
	for i := range d.Cards {
		if !d.Cards[i].IsDue(today) {
			continue
		}
		if i == skip {
			deferred = true
			continue
		}
		return i, true
	}
	if deferred {
		return skip, true
	}
	return -1, false
}

// DueCount returns how many cards are due on today.
func (d *Deck) DueCount(today calendar.Date) int {
	n := 0
	for i := range d.Cards {
		if d.Cards[i].IsDue(today) {
			n++
		}
	}
	return n
}

// Search returns the cards whose side text contains query, ignoring case, in
// sequence order. An empty query matches nothing.
func (d *Deck) Search(side Side, query string) []Match {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	var matches []Match
	for i := range d.Cards {
		text := d.Cards[i].Side(side).Text
		if strings.Contains(strings.ToLower(text), needle) {
			matches = append(matches, Match{Position: i, Text: text})
		}
	}
	return matches
}
