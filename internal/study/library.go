// Package study drives study sessions over a set of decks.
package study

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/conorfennell/smartlearner/internal/calendar"
	"github.com/conorfennell/smartlearner/internal/domain"
	"github.com/conorfennell/smartlearner/internal/storage"
)

var (
	ErrNoDeck        = errors.New("study: no deck selected")
	ErrNoCurrentCard = errors.New("study: no current card")
)

// DeckSaver persists one deck and returns its storage id.
type DeckSaver interface {
	SaveDeck(id int64, deck *domain.Deck) (int64, error)
}

// Library is the ordered set of decks with one of them selected.
type Library struct {
	records  []storage.DeckRecord
	selected int
}

// NewLibrary wraps the decks supplied by the persistence layer. The first
// deck, if any, is selected.
func NewLibrary(records []storage.DeckRecord) *Library {
	return &Library{records: records}
}

// Len returns the number of decks.
func (l *Library) Len() int {
	return len(l.records)
}

// Decks returns a copy of the deck list with storage ids, in order. The
// decks themselves are shared with the library.
func (l *Library) Decks() []storage.DeckRecord {
	return append([]storage.DeckRecord(nil), l.records...)
}

// NewDeck appends an empty, unsaved deck and returns its index.
func (l *Library) NewDeck(name string) (int, error) {
	deck, err := domain.NewDeck(name)
	if err != nil {
		return -1, err
	}
	l.records = append(l.records, storage.DeckRecord{Deck: deck})
	return len(l.records) - 1, nil
}

// Find returns the index of the first deck called name.
func (l *Library) Find(name string) (int, bool) {
	for i, rec := range l.records {
		if rec.Deck.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Select makes the deck at index current.
func (l *Library) Select(index int) error {
	if index < 0 || index >= len(l.records) {
		return fmt.Errorf("%w: index %d of %d", ErrNoDeck, index, len(l.records))
	}
	l.selected = index
	return nil
}

// Current returns the selected deck.
func (l *Library) Current() (*domain.Deck, error) {
	if l.selected >= len(l.records) {
		return nil, ErrNoDeck
	}
	return l.records[l.selected].Deck, nil
}

// CurrentID returns the storage id of the selected deck, 0 if unsaved.
func (l *Library) CurrentID() int64 {
	if l.selected >= len(l.records) {
		return 0
	}
	return l.records[l.selected].ID
}

// CurrentName returns the selected deck's name, or "No decks".
func (l *Library) CurrentName() string {
	deck, err := l.Current()
	if err != nil {
		return "No decks"
	}
	return deck.Name
}

// Search runs a deck search on the selected deck. With no decks it finds nothing.
func (l *Library) Search(side domain.Side, query string) []domain.Match {
	deck, err := l.Current()
	if err != nil {
		return nil
	}
	return deck.Search(side, query)
}

// DueCard picks the next due card of the selected deck, avoiding skip when
// another card is due. With no decks nothing is due.
func (l *Library) DueCard(today calendar.Date, skip int) (int, bool) {
	deck, err := l.Current()
	if err != nil {
		return -1, false
	}
	return deck.DueCard(today, skip)
}

// Save writes every deck and records the ids of newly stored ones.
func (l *Library) Save(store DeckSaver) error {
	for i := range l.records {
		rec := &l.records[i]
		id, err := store.SaveDeck(rec.ID, rec.Deck)
		if err != nil {
			return fmt.Errorf("saving deck %q: %w", rec.Deck.Name, err)
		}
		if rec.ID == 0 {
			slog.Info("Deck stored", "deck", rec.Deck.Name, "id", id)
		}
		rec.ID = id
	}
	return nil
}
