package domain

import (
	"strings"
	"time"
)

const (
	sleepCategoryName = "sleep"

	// Night sleep must end in the morning wake-up window [04:00, 12:00)
	wakeUpWindowStartHour = 4
	wakeUpWindowEndHour   = 12

	minNightSleepMinutes = 120
)

// SleepWindow is one candidate Night Sleep placed on the calendar
type SleepWindow struct {
	Start    time.Time
	End      time.Time
	Activity Activity
}

func IsSleepCategory(category Category) bool {
	return strings.EqualFold(category.Name, sleepCategoryName)
}

// FindSleepCategoryID returns the id of the user's Sleep category, or nil if there is none.
//
// NOTE: Nothing enforces a single Sleep category per user. The lowest id wins.
func FindSleepCategoryID(categories []Category) *int64 {
	var found *int64
	for _, category := range categories {
		if !IsSleepCategory(category) {
			continue
		}
		if found == nil || category.ID < *found {
			id := category.ID
			found = &id
		}
	}
	return found
}

// IsNightSleep reports whether the activity is a Sleep-category activity of at least
// two hours that ends in the morning wake-up window.
func IsNightSleep(activity Activity, sleepCategoryID *int64) bool {
	if sleepCategoryID == nil || activity.CategoryID == nil {
		return false
	}
	if *activity.CategoryID != *sleepCategoryID {
		return false
	}

	endHour := activity.EndTime.Hour()
	if endHour < wakeUpWindowStartHour || endHour >= wakeUpWindowEndHour {
		return false
	}

	return DurationMinutes(activity.StartTime, activity.EndTime) >= minNightSleepMinutes
}

// NightSleepWindows returns a SleepWindow for each activity that qualifies as Night Sleep
func NightSleepWindows(activities []Activity, sleepCategoryID *int64) []SleepWindow {
	windows := []SleepWindow{}
	for _, activity := range activities {
		if !IsNightSleep(activity, sleepCategoryID) {
			continue
		}
		windows = append(windows, SleepWindow{
			Start:    activity.Start(),
			End:      activity.End(),
			Activity: activity,
		})
	}
	return windows
}

// HasNightSleepEndedOn reports whether any activity stored on date or the day before is a
// Night Sleep that ended on date.
//
// NOTE: The caller is responsible for only passing activities belonging to a single user
func HasNightSleepEndedOn(date time.Time, activities []Activity, sleepCategoryID *int64) bool {
	date = DateOf(date)
	previousDate := AddDays(date, -1)

	for _, activity := range activities {
		activityDate := DateOf(activity.ActivityDate)
		if !activityDate.Equal(date) && !activityDate.Equal(previousDate) {
			continue
		}
		if !IsNightSleep(activity, sleepCategoryID) {
			continue
		}
		if SameDate(activity.End(), date) {
			return true
		}
	}
	return false
}
