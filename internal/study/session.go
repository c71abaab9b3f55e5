package study

import (
	"fmt"

	"github.com/conorfennell/smartlearner/internal/calendar"
	"github.com/conorfennell/smartlearner/internal/domain"
	"github.com/conorfennell/smartlearner/internal/knol"
	"github.com/conorfennell/smartlearner/internal/schedule"
)

const (
	newFrontText = "New front"
	newBackText  = "New back"
)

// Recorder receives a log entry for every answered card.
type Recorder interface {
	InsertReviewLog(log domain.ReviewLog) error
}

// Session studies one deck. It remembers the card being shown and the card
// answered last, both by position, and forgets them whenever a card is removed.
type Session struct {
	deck      *domain.Deck
	deckID    int64
	scheduler *schedule.Scheduler
	clock     calendar.Clock
	recorder  Recorder

	current  int
	answered int
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder sends review logs to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithDeckID tags review logs with the deck's storage id.
func WithDeckID(id int64) Option {
	return func(s *Session) { s.deckID = id }
}

// NewSession starts a session on deck with no current card.
func NewSession(deck *domain.Deck, scheduler *schedule.Scheduler, clock calendar.Clock, opts ...Option) *Session {
	s := &Session{
		deck:      deck,
		scheduler: scheduler,
		clock:     clock,
		current:   -1,
		answered:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next selects the next due card and returns its position. The card answered
// last is only offered again when nothing else is due.
func (s *Session) Next() (int, bool) {
	pos, ok := s.deck.DueCard(s.clock.Today(), s.answered)
	if !ok {
		s.current = -1
		return -1, false
	}
	s.current = pos
	return pos, true
}

// Select makes the card at position current, e.g. a search result.
func (s *Session) Select(position int) error {
	if _, err := s.deck.Card(position); err != nil {
		return err
	}
	s.current = position
	return nil
}

// Current returns the current card.
func (s *Session) Current() (*domain.Card, error) {
	if s.current < 0 {
		return nil, ErrNoCurrentCard
	}
	return s.deck.Card(s.current)
}

// Answer reviews the current card with grade. If the recorder fails the
// card is left as it was.
func (s *Session) Answer(grade schedule.Grade) error {
	card, err := s.Current()
	if err != nil {
		return err
	}
	today := s.clock.Today()
	next, err := s.scheduler.NextState(card.State(), grade, today)
	if err != nil {
		return err
	}

	// The card only changes once its review is recorded.
	if s.recorder != nil {
		log := domain.ReviewLog{
			DeckID:   s.deckID,
			CardHash: knol.Hash(*card),
			Reviewed: today,
			Grade:    grade,
			Tier:     next.Tier,
			Due:      next.Due,
		}
		if err := s.recorder.InsertReviewLog(log); err != nil {
			return fmt.Errorf("recording review: %w", err)
		}
	}

	card.Tier = next.Tier
	card.Due = next.Due
	s.answered = s.current
	return nil
}

// CreateCard appends a placeholder card, due today, and makes it current.
func (s *Session) CreateCard() int {
	card := domain.NewCard(domain.Field{Text: newFrontText}, domain.Field{Text: newBackText}, s.clock.Today())
	s.current = s.deck.Add(card)
	return s.current
}

// EditCurrent replaces the text of the current card.
func (s *Session) EditCurrent(front, back string) error {
	card, err := s.Current()
	if err != nil {
		return err
	}
	card.Edit(front, back)
	return nil
}

// SetAudio stores an audio handle on a side of the current card. An empty
// handle clears it.
func (s *Session) SetAudio(side domain.Side, handle string) error {
	card, err := s.Current()
	if err != nil {
		return err
	}
	if handle == "" {
		card.ClearAudio(side)
		return nil
	}
	card.SetAudio(side, handle)
	return nil
}

// FrontAudioExists reports whether the current card has front audio.
func (s *Session) FrontAudioExists() bool {
	return s.audioExists(domain.Front)
}

// BackAudioExists reports whether the current card has back audio.
func (s *Session) BackAudioExists() bool {
	return s.audioExists(domain.Back)
}

func (s *Session) audioExists(side domain.Side) bool {
	card, err := s.Current()
	if err != nil {
		return false
	}
	return card.Side(side).HasAudio()
}

// DeleteCurrent removes the current card. Every position held by the session
// is dropped because removal moves another card into the freed slot.
func (s *Session) DeleteCurrent() error {
	if s.current < 0 {
		return ErrNoCurrentCard
	}
	if err := s.deck.Remove(s.current); err != nil {
		return err
	}
	s.current = -1
	s.answered = -1
	return nil
}
