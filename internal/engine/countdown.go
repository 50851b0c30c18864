package engine

import (
	"time"

	"github.com/tartampluch/go-celebrate/internal/config"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// TimeRemaining is the day/hour/minute/second breakdown shown by the countdown.
// All fields are non-negative; the zero value means the target has been reached.
type TimeRemaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether the countdown has reached the target.
func (t TimeRemaining) IsZero() bool {
	return t == TimeRemaining{}
}

// Total converts the breakdown back into a duration.
func (t TimeRemaining) Total() time.Duration {
	return time.Duration(t.Days)*24*time.Hour +
		time.Duration(t.Hours)*time.Hour +
		time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second
}

// Remaining computes the time left until target using integer division on milliseconds.
// Past targets clamp to zero.
func Remaining(now, target time.Time) TimeRemaining {
	ms := target.Sub(now).Milliseconds()
	if ms <= 0 {
		return TimeRemaining{}
	}

	return TimeRemaining{
		Days:    int(ms / msPerDay),
		Hours:   int(ms / msPerHour % 24),
		Minutes: int(ms / msPerMinute % 60),
		Seconds: int(ms / msPerSecond % 60),
	}
}

// NextTarget projects the birthday onto the current year, or the next one when this
// year's date is already behind us.
//
// The rollover compares against the start of today, not against now: a target that
// passed earlier today is kept even though now > target. Launching any time on the
// birthday therefore yields a zero countdown and an immediate celebration, where a
// strict now > target rule would count down to next year instead.
func NextTarget(now time.Time, b config.Birthday) time.Time {
	loc := now.Location()
	year := now.Year()

	// time.Date normalizes Feb 29 to March 1st in non-leap years.
	candidate := time.Date(year, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(year+1, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, loc)
	}
	return candidate
}
