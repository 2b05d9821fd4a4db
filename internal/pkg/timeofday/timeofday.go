// Package timeofday handles wall-clock values without a date component.
//
// Values are "HH:MM:SS" strings in 24-hour format. An end time earlier than its
// start time is read as belonging to the next calendar day.
package timeofday

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
)

const (
	Layout        = "15:04:05"
	MinutesPerDay = 24 * 60
)

var ErrInvalidFormat = apperror.New(apperror.KindValidation, "time must be in HH:MM:SS 24-hour format")

var pattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})$`)

// Parse returns the minutes since midnight for s.
func Parse(s string) (int, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrInvalidFormat
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, ErrInvalidFormat
	}

	return hours*60 + minutes, nil
}

// IsValid reports whether s parses.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// ElapsedMinutes returns end-start, wrapping past midnight when end is earlier.
func ElapsedMinutes(start, end int) int {
	diff := end - start
	if diff < 0 {
		diff += MinutesPerDay
	}
	return diff
}

// Between parses both values and returns the elapsed minutes.
func Between(start, end string) (int, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	return ElapsedMinutes(s, e), nil
}

// MinutesToHours rounds to two decimal places.
func MinutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// Now formats the current wall clock in loc.
func Now(loc *time.Location) string {
	return time.Now().In(loc).Format(Layout)
}

// Today returns midnight of the current calendar day in loc, as a UTC date.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc))
}

// DateOf strips the time component, keeping the calendar day of t.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Clock reads "today" and "now" in a fixed location. The zero value uses UTC and time.Now.
type Clock struct {
	Location *time.Location
	NowFunc  func() time.Time
}

func NewClock(loc *time.Location) Clock {
	return Clock{Location: loc}
}

func (c Clock) current() time.Time {
	now := time.Now
	if c.NowFunc != nil {
		now = c.NowFunc
	}

	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (c Clock) Today() time.Time {
	return DateOf(c.current())
}

func (c Clock) Now() string {
	return c.current().Format(Layout)
}

// Instant returns the current time in UTC for timestamps.
func (c Clock) Instant() time.Time {
	return c.current().UTC()
}
