package domain

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time without a date, stored as seconds since midnight
type TimeOfDay struct {
	seconds int
}

func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTimeOfDay, hour, minute, second)
	}
	return TimeOfDay{seconds: hour*3600 + minute*60 + second}, nil
}

// Accepts HH:MM and HH:MM:SS
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return NewTimeOfDay(parsed.Hour(), parsed.Minute(), parsed.Second())
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: '%s'", ErrInvalidTimeOfDay, raw)
}

func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{seconds: t.Hour()*3600 + t.Minute()*60 + t.Second()}
}

func (t TimeOfDay) Hour() int {
	return t.seconds / 3600
}

func (t TimeOfDay) Minute() int {
	return (t.seconds % 3600) / 60
}

func (t TimeOfDay) Second() int {
	return t.seconds % 60
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds < other.seconds
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.seconds == other.seconds
}

// On places the time of day on the given calendar date
func (t TimeOfDay) On(date time.Time) time.Time {
	date = DateOf(date)
	return date.Add(time.Duration(t.seconds) * time.Second)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// DurationMinutes returns the elapsed minutes between start and end.
//
// An end before start is understood to cross midnight. Partial minutes are truncated,
// so the result is always in [0, 1439].
func DurationMinutes(start, end TimeOfDay) int {
	if end.Before(start) {
		return (secondsPerDay - start.seconds + end.seconds) / 60
	}
	return (end.seconds - start.seconds) / 60
}
