// Package stamp provides calendar-date and time-of-day value types used by
// generated build stamps. All values are anchored to UTC; constructors
// validate their components so a stamped literal can never hold an
// impossible date or clock reading.
package stamp

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the triple and returns a Date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("stamp: month %d out of range", int(month))
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("stamp: day %d out of range for %04d-%02d", day, year, int(month))
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustDate is NewDate for inputs known valid by construction, such as the
// fields of a captured timestamp. It panics on invalid input.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the date as zero-padded YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Clock is a wall-clock time of day with second precision.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// NewClock validates the triple and returns a Clock.
func NewClock(hour, minute, second int) (Clock, error) {
	if hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("stamp: hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("stamp: minute %d out of range", minute)
	}
	if second < 0 || second > 59 {
		return Clock{}, fmt.Errorf("stamp: second %d out of range", second)
	}
	return Clock{Hour: hour, Minute: minute, Second: second}, nil
}

// MustClock is NewClock for inputs known valid by construction.
func MustClock(hour, minute, second int) Clock {
	c, err := NewClock(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the clock as zero-padded HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// DateTime combines a date and a clock into a UTC instant.
func DateTime(d Date, c Clock) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}

// MustDateTime validates both component triples and returns the combined
// UTC instant. It panics on invalid input.
func MustDateTime(year int, month time.Month, day, hour, minute, second int) time.Time {
	return DateTime(MustDate(year, month, day), MustClock(hour, minute, second))
}

// Split decomposes a UTC instant into its date and clock values. The result
// always satisfies the constructors' range checks.
func Split(t time.Time) (Date, Clock) {
	u := t.UTC()
	return Date{Year: u.Year(), Month: u.Month(), Day: u.Day()},
		Clock{Hour: u.Hour(), Minute: u.Minute(), Second: u.Second()}
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
