package domain

import "time"

// DayBoundary is the half-open interval [Start, End) of one psychological day
type DayBoundary struct {
	Start time.Time
	End   time.Time
}

func CalendarDayBoundary(date time.Time) DayBoundary {
	date = DateOf(date)
	return DayBoundary{
		Start: date,
		End:   AddDays(date, 1),
	}
}

// ResolveBoundaries computes the psychological day for targetDate.
//
// The day starts at the latest wake-up from a Night Sleep that began the evening before
// and ends at the latest wake-up from a Night Sleep that began on targetDate. Each side
// without such a sleep falls back to calendar midnight independently.
//
// The activities should cover at least targetDate-1 through targetDate+2.
func ResolveBoundaries(activities []Activity, targetDate time.Time, sleepCategoryID *int64) DayBoundary {
	boundary := CalendarDayBoundary(targetDate)
	if sleepCategoryID == nil {
		return boundary
	}

	targetDate = DateOf(targetDate)
	previousDate := AddDays(targetDate, -1)
	nextDate := AddDays(targetDate, 1)

	var previousNight, nextNight *SleepWindow
	for _, window := range NightSleepWindows(activities, sleepCategoryID) {
		startDate := DateOf(window.Start)
		endDate := DateOf(window.End)

		switch {
		case startDate.Equal(previousDate) && endDate.Equal(targetDate):
			previousNight = latestWakeUp(previousNight, window)
		case startDate.Equal(targetDate) && endDate.Equal(nextDate):
			nextNight = latestWakeUp(nextNight, window)
		}
	}

	if previousNight != nil {
		boundary.Start = previousNight.End
	}
	if nextNight != nil {
		boundary.End = nextNight.End
	}

	return boundary
}

// Pick the window with the latest end. Equal ends are broken by the highest activity id.
func latestWakeUp(current *SleepWindow, candidate SleepWindow) *SleepWindow {
	if current == nil {
		return &candidate
	}
	if candidate.End.After(current.End) {
		return &candidate
	}
	if candidate.End.Equal(current.End) && candidate.Activity.ID > current.Activity.ID {
		return &candidate
	}
	return current
}
