package calendar

import "time"

// Clock supplies the current calendar day.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

// Today returns the current day of the system clock.
func (c SystemClock) Today() Date {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return FromTime(now)
}

// FixedClock always reports the same day. Tests move it forward with Advance.
type FixedClock struct {
	Date Date
}

// Today returns the fixed day.
func (c *FixedClock) Today() Date { return c.Date }

// Advance moves the clock n days forward.
func (c *FixedClock) Advance(n int) {
	c.Date = c.Date.AddDays(n)
}
