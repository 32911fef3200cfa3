package entities

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of a logical day.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time of day or zone.
// The zero value means "never".
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}

	return NewDate(t.Date()), nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

// AddDays shifts the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of whole days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Calendar maps instants to logical days. A logical day starts at ResetHour
// local time instead of midnight.
type Calendar struct {
	loc       *time.Location
	resetHour int
}

// NewCalendar creates a calendar for the given zone and reset hour (0-23).
func NewCalendar(loc *time.Location, resetHour int) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc, resetHour: resetHour}
}

func (c Calendar) Location() *time.Location { return c.loc }

func (c Calendar) ResetHour() int { return c.resetHour }

// Today returns the logical day that contains now.
func (c Calendar) Today(now time.Time) Date {
	shifted := now.In(c.loc).Add(-time.Duration(c.resetHour) * time.Hour)
	return NewDate(shifted.Date())
}

// NextReset returns the first instant after now at which a new logical day begins.
func (c Calendar) NextReset(now time.Time) time.Time {
	today := c.Today(now)
	next := today.AddDays(1)
	y, m, d := next.t.Date()
	return time.Date(y, m, d, c.resetHour, 0, 0, 0, c.loc)
}
