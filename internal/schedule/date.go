package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// AmbiguousDateError is returned for a date string that does not match
// YYYY-MM-DD or names an impossible calendar date.
type AmbiguousDateError struct {
	Input string
}

func (e AmbiguousDateError) Error() string {
	return fmt.Sprintf("ambiguous date %q: want YYYY-MM-DD", e.Input)
}

// Date is a calendar date with no time-of-day component. The zero value is
// not a valid date; construct via ParseDate, NewDate, or Today.
type Date struct {
	t time.Time // midnight UTC of the calendar day
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a strict YYYY-MM-DD string. Lenient forms ("2024-1-5")
// and impossible dates ("2024-02-30") are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, AmbiguousDateError{Input: s}
	}
	if t.Format(DateLayout) != s {
		return Date{}, AmbiguousDateError{Input: s}
	}
	return Date{t: t}, nil
}

// MustDate panics on a bad date string. Test helper.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Today normalizes a wall-clock instant into the calendar date of the given
// time zone. Resolving a whole day against one Date avoids rituals flipping
// due-ness mid-evaluation from drifting clock reads.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return NewDate(y, m, d)
}

func (d Date) String() string { return d.t.Format(DateLayout) }

func (d Date) IsZero() bool { return d.t.IsZero() }

// Weekday returns the day of week with Sunday=0.
func (d Date) Weekday() int { return int(d.t.Weekday()) }

func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysBetween returns b - a in whole days (negative when b is before a).
func DaysBetween(a, b Date) int {
	return int(b.t.Sub(a.t) / (24 * time.Hour))
}

// weekStart returns the Sunday that begins d's week.
func weekStart(d Date) Date {
	return d.AddDays(-d.Weekday())
}

// WeeksBetween returns the number of whole calendar weeks (Sunday-start)
// between a's week and b's week.
func WeeksBetween(a, b Date) int {
	return DaysBetween(weekStart(a), weekStart(b)) / 7
}

// ValidateClock checks an HH:MM time-slot string. Zero-padded 24h form only,
// so lexical order matches chronological order.
func ValidateClock(s string) error {
	bad := fmt.Errorf("invalid time %q: want HH:MM", s)
	if len(s) != 5 || s[2] != ':' {
		return bad
	}
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hh, &mm); err != nil {
		return bad
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return bad
	}
	return nil
}
