package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when text cannot be parsed as YYYY-MM-DD.
var ErrInvalidDate = errors.New("calendar: invalid date")

// Date is a calendar day with no time-of-day or zone.
// It does not validate itself: a Date such as 31/04 is representable, and
// arithmetic on it is deterministic but not meaningful.
type Date struct {
	Day   int
	Month int
	Year  int
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// YearLength returns 366 for leap years and 365 otherwise.
func YearLength(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// MonthLength returns the number of days in month (1-12) of year.
// Out-of-range months report 0.
func MonthLength(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Day: d, Month: int(m), Year: y}
}

// Compare returns -1, 0 or +1 ordering a and b by year, then month, then day.
func Compare(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return Compare(d, other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return Compare(d, other) > 0 }

// dayOfYear is the 1-based ordinal of d within its year.
func (d Date) dayOfYear() int {
	n := d.Day
	for m := 1; m < d.Month && m <= 12; m++ {
		n += MonthLength(m, d.Year)
	}
	return n
}

// DaysBetween returns the number of days separating a and b. The result is
// symmetric and zero only when the dates are equal.
//
// The whole years from the earlier year up to the later one are summed with
// their leap-aware lengths, then the earlier date's offset into its year is
// taken away and the later date's offset added.
func DaysBetween(a, b Date) int {
	if Compare(a, b) > 0 {
		a, b = b, a
	}
	days := 0
	for y := a.Year; y < b.Year; y++ {
		days += YearLength(y)
	}
	days += b.dayOfYear() - a.dayOfYear()
	if days < 0 {
		// Only reachable with malformed dates.
		return -days
	}
	return days
}

// AddDays returns the date n days after d (before, for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(time.Date(d.Year, time.Month(d.Month), d.Day+n, 0, 0, 0, 0, time.UTC))
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses a YYYY-MM-DD string. Both digit widths and the calendar
// itself are enforced, so 2023-02-29 is rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}
