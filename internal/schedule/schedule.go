package schedule

import (
	"fmt"

	"github.com/conorfennell/smartlearner/internal/calendar"
)

// Intervals maps a tier to the number of days until the card is next due.
// A valid table starts at 0 and never decreases.
type Intervals []int

// DefaultIntervals provides a starting calibration.
func DefaultIntervals() Intervals {
	return Intervals{0, 1, 3, 7, 14, 30, 90, 180, 365}
}

// Validate checks that the table is non-empty, starts at 0 and is non-decreasing.
func (iv Intervals) Validate() error {
	if len(iv) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidIntervals)
	}
	if iv[0] != 0 {
		return fmt.Errorf("%w: tier 0 must be 0 days, got %d", ErrInvalidIntervals, iv[0])
	}
	for i := 1; i < len(iv); i++ {
		if iv[i] < iv[i-1] {
			return fmt.Errorf("%w: tier %d (%d days) is shorter than tier %d (%d days)",
				ErrInvalidIntervals, i, iv[i], i-1, iv[i-1])
		}
	}
	return nil
}

// MaxTier is the highest reachable tier.
func (iv Intervals) MaxTier() int {
	return len(iv) - 1
}

// Days returns the interval for tier, clamped to the table.
func (iv Intervals) Days(tier int) int {
	if tier < 0 {
		tier = 0
	}
	if tier > iv.MaxTier() {
		tier = iv.MaxTier()
	}
	return iv[tier]
}

// State is the scheduling part of a card.
type State struct {
	Tier int
	Due  calendar.Date
}

// Scheduler applies review grades to card states.
type Scheduler struct {
	intervals Intervals
}

// NewScheduler validates the interval table and returns a Scheduler using a
// private copy of it.
func NewScheduler(intervals Intervals) (*Scheduler, error) {
	if err := intervals.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{intervals: append(Intervals(nil), intervals...)}, nil
}

// DefaultScheduler returns a Scheduler over DefaultIntervals.
func DefaultScheduler() *Scheduler {
	return &Scheduler{intervals: DefaultIntervals()}
}

// Intervals returns a copy of the interval table.
func (s *Scheduler) Intervals() Intervals {
	return append(Intervals(nil), s.intervals...)
}

// Initial is the state of a new card: tier 0, due today.
func (s *Scheduler) Initial(today calendar.Date) State {
	return State{Tier: 0, Due: today}
}

// NextState returns the state after reviewing with grade on today.
//
// Wrong resets to tier 0, due today. Difficult keeps the tier, except that a
// tier 0 card moves to tier 1. Easy moves one tier up. Tiers never pass
// MaxTier. A nil or zero Scheduler returns ErrInvalidIntervals.
func (s *Scheduler) NextState(current State, grade Grade, today calendar.Date) (State, error) {
	if s == nil || len(s.intervals) == 0 {
		return current, fmt.Errorf("%w: scheduler has no intervals", ErrInvalidIntervals)
	}
	var tier int
	switch grade {
	case Wrong:
		return State{Tier: 0, Due: today}, nil
	case Difficult:
		tier = current.Tier
		if tier == 0 {
			tier = 1
		}
	case Easy:
		tier = current.Tier + 1
	default:
		return current, fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade))
	}

	if tier > s.intervals.MaxTier() {
		tier = s.intervals.MaxTier()
	}
	if tier < 0 {
		tier = 0
	}
	return State{Tier: tier, Due: today.AddDays(s.intervals[tier])}, nil
}
