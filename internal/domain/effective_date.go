package domain

import "time"

type EffectiveDateRule string

const (
	RuleManualOverride      EffectiveDateRule = "manual_override"
	RuleSleepConfirmed      EffectiveDateRule = "sleep_confirmed"
	RuleSessionContinuation EffectiveDateRule = "session_continuation"
	RuleCalendarFallback    EffectiveDateRule = "calendar_fallback"
)

// Activities started before this hour may still belong to the previous session
const sessionContinuationCutoffHour = 12

type EffectiveDateInput struct {
	// Start time of the activity being logged
	StartTime TimeOfDay
	// Calendar date of the wall clock at logging time
	CalendarDate time.Time
	// Set when the user has explicitly ended their previous day
	ManualOverride *time.Time

	// Activities stored on CalendarDate-1 and CalendarDate
	RecentActivities []Activity
	SleepCategoryID  *int64
	// Whether any activity already carries effective date == CalendarDate
	HasActivityOnCalendarDate bool
}

type EffectiveDateDecision struct {
	Date time.Time
	Rule EffectiveDateRule
}

// AssignEffectiveDate returns the psychological day a newly logged activity belongs to
func AssignEffectiveDate(input EffectiveDateInput) time.Time {
	return DecideEffectiveDate(input).Date
}

// DecideEffectiveDate applies the rules in priority order and reports which one matched.
//
// NOTE: The session continuation rule depends on HasActivityOnCalendarDate, so the result
// for a borderline activity depends on the order activities are logged in. Callers must
// serialize assignment per user to get a deterministic outcome.
func DecideEffectiveDate(input EffectiveDateInput) EffectiveDateDecision {
	calendarDate := DateOf(input.CalendarDate)

	if input.ManualOverride != nil {
		return EffectiveDateDecision{Date: DateOf(*input.ManualOverride), Rule: RuleManualOverride}
	}

	if HasNightSleepEndedOn(calendarDate, input.RecentActivities, input.SleepCategoryID) {
		return EffectiveDateDecision{Date: calendarDate, Rule: RuleSleepConfirmed}
	}

	if input.StartTime.Hour() < sessionContinuationCutoffHour && !input.HasActivityOnCalendarDate {
		return EffectiveDateDecision{Date: AddDays(calendarDate, -1), Rule: RuleSessionContinuation}
	}

	return EffectiveDateDecision{Date: calendarDate, Rule: RuleCalendarFallback}
}

// CurrentEffectiveDate returns the psychological day the user is currently in
func CurrentEffectiveDate(
	today time.Time,
	manualOverride *time.Time,
	recentActivities []Activity,
	sleepCategoryID *int64,
	hasActivityToday bool,
) time.Time {
	today = DateOf(today)

	if manualOverride != nil {
		return DateOf(*manualOverride)
	}

	if HasNightSleepEndedOn(today, recentActivities, sleepCategoryID) {
		return today
	}

	if hasActivityToday {
		return today
	}

	// No wake-up and nothing logged today yet -> still in yesterday's session
	return AddDays(today, -1)
}

// ActiveOverride returns the override date if it still applies on calendarDate.
//
// An override stops applying once the calendar has moved past the day it forced.
func ActiveOverride(override *DayOverride, calendarDate time.Time) *time.Time {
	if override == nil {
		return nil
	}
	date := DateOf(override.EffectiveDate)
	if date.Before(DateOf(calendarDate)) {
		return nil
	}
	return &date
}
