package domain

import (
	"github.com/conorfennell/smartlearner/internal/calendar"
	"github.com/conorfennell/smartlearner/internal/schedule"
)

// Side selects the front or back of a card.
type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// Field is one side of a card. Audio is a handle owned by the audio store;
// an empty string means no audio.
type Field struct {
	Text  string
	Audio string
}

// HasAudio reports whether the field carries an audio handle.
func (f Field) HasAudio() bool {
	return f.Audio != ""
}

// Card represents a single front-back study item and its schedule.
type Card struct {
	Front Field
	Back  Field
	Tier  int
	Due   calendar.Date
}

// NewCard creates a card at tier 0, due today.
func NewCard(front, back Field, today calendar.Date) Card {
	return Card{Front: front, Back: back, Due: today}
}

// Side returns the field for side.
func (c *Card) Side(side Side) *Field {
	if side == Back {
		return &c.Back
	}
	return &c.Front
}

// Edit replaces the text of both sides. Audio and schedule are untouched.
func (c *Card) Edit(front, back string) {
	c.Front.Text = front
	c.Back.Text = back
}

// SetAudio stores handle on side.
func (c *Card) SetAudio(side Side, handle string) {
	c.Side(side).Audio = handle
}

// ClearAudio drops the audio handle of side.
func (c *Card) ClearAudio(side Side) {
	c.Side(side).Audio = ""
}

// IsDue reports whether the card should be studied on today.
func (c Card) IsDue(today calendar.Date) bool {
	return calendar.Compare(c.Due, today) <= 0
}

// State returns the scheduling state of the card.
func (c Card) State() schedule.State {
	return schedule.State{Tier: c.Tier, Due: c.Due}
}

// Review applies grade on today. The card is left unchanged on error.
func (c *Card) Review(s *schedule.Scheduler, grade schedule.Grade, today calendar.Date) error {
	next, err := s.NextState(c.State(), grade, today)
	if err != nil {
		return err
	}
	c.Tier = next.Tier
	c.Due = next.Due
	return nil
}

// ReviewLog records a single review event for a card.
// CardHash is the content hash of the card at review time.
type ReviewLog struct {
	DeckID   int64
	CardHash string
	Reviewed calendar.Date
	Grade    schedule.Grade
	Tier     int
	Due      calendar.Date
}
