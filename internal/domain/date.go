package domain

import "time"

const DateLayout = "2006-01-02"

// Calendar dates are represented as time.Time at midnight UTC

func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the calendar date as seen in t's location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, raw)
}

func AddDays(date time.Time, days int) time.Time {
	return DateOf(date).AddDate(0, 0, days)
}

func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
