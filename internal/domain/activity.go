package domain

import "time"

type Activity struct {
	ID         int64
	UserID     string
	Name       string
	CategoryID *int64
	StartTime  TimeOfDay
	EndTime    TimeOfDay
	// The calendar date the activity was stored under
	ActivityDate time.Time
	// The psychological day the activity belongs to. Nil for activities that predate assignment.
	EffectiveDate *time.Time
}

// CrossesMidnight is true when the activity ends on the calendar day after ActivityDate
func (a *Activity) CrossesMidnight() bool {
	return a.EndTime.Before(a.StartTime)
}

func (a *Activity) Start() time.Time {
	return a.StartTime.On(a.ActivityDate)
}

func (a *Activity) End() time.Time {
	if a.CrossesMidnight() {
		return a.EndTime.On(AddDays(a.ActivityDate, 1))
	}
	return a.EndTime.On(a.ActivityDate)
}

func (a *Activity) DurationMinutes() int {
	return DurationMinutes(a.StartTime, a.EndTime)
}

type Category struct {
	ID        int64
	UserID    string
	Name      string
	Color     string
	IsDefault bool
}

// DayOverride is a manual "End Day" record forcing activities onto EffectiveDate
type DayOverride struct {
	UserID        string
	EffectiveDate time.Time
	CreatedAt     time.Time
}
