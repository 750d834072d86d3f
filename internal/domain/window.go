package domain

import (
	"slices"
)

// SelectForDay returns the activities overlapping the boundary, ordered by
// (activity date, start time). The input is not modified.
func SelectForDay(activities []Activity, boundary DayBoundary) []Activity {
	selected := make([]Activity, 0, len(activities))
	for _, activity := range activities {
		// Overlap, not containment: activities straddling a boundary are included
		if activity.Start().Before(boundary.End) && activity.End().After(boundary.Start) {
			selected = append(selected, activity)
		}
	}

	slices.SortStableFunc(selected, func(a, b Activity) int {
		if cmp := DateOf(a.ActivityDate).Compare(DateOf(b.ActivityDate)); cmp != 0 {
			return cmp
		}
		if a.StartTime.Before(b.StartTime) {
			return -1
		}
		if b.StartTime.Before(a.StartTime) {
			return 1
		}
		return 0
	})

	return selected
}
