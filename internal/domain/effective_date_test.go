package domain_test

import (
	"testing"
	"time"

	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/domaintest"
	"github.com/stretchr/testify/require"
)

func TestDecideEffectiveDate(t *testing.T) {
	t.Parallel()

	sleepCategoryID := domaintest.SleepCategory()
	calendarDate := domaintest.Date(t, "2024-03-10")
	yesterday := domaintest.Date(t, "2024-03-09")
	overrideDate := domaintest.Date(t, "2024-03-11")

	sleepEndedToday := []domain.Activity{
		domaintest.NewActivity(t, "2024-03-09", "23:30", "07:15").AsSleep().Build(),
	}
	napOnly := []domain.Activity{
		domaintest.NewActivity(t, "2024-03-09", "15:00", "16:30").AsSleep().Build(),
	}

	tests := []struct {
		name         string
		input        domain.EffectiveDateInput
		expectedDate time.Time
		expectedRule domain.EffectiveDateRule
	}{
		{
			name: "manual override wins over sleep",
			input: domain.EffectiveDateInput{
				StartTime:        domaintest.TimeOfDay(t, "09:00"),
				CalendarDate:     calendarDate,
				ManualOverride:   &overrideDate,
				RecentActivities: sleepEndedToday,
				SleepCategoryID:  sleepCategoryID,
			},
			expectedDate: overrideDate,
			expectedRule: domain.RuleManualOverride,
		},
		{
			name: "manual override wins over session continuation",
			input: domain.EffectiveDateInput{
				StartTime:      domaintest.TimeOfDay(t, "02:00"),
				CalendarDate:   calendarDate,
				ManualOverride: &calendarDate,
			},
			expectedDate: calendarDate,
			expectedRule: domain.RuleManualOverride,
		},
		{
			name: "sleep confirmed beats session continuation",
			input: domain.EffectiveDateInput{
				StartTime:        domaintest.TimeOfDay(t, "09:00"),
				CalendarDate:     calendarDate,
				RecentActivities: sleepEndedToday,
				SleepCategoryID:  sleepCategoryID,
			},
			expectedDate: calendarDate,
			expectedRule: domain.RuleSleepConfirmed,
		},
		{
			name: "late night activity continues yesterday",
			input: domain.EffectiveDateInput{
				StartTime:        domaintest.TimeOfDay(t, "02:00"),
				CalendarDate:     calendarDate,
				RecentActivities: napOnly,
				SleepCategoryID:  sleepCategoryID,
			},
			expectedDate: yesterday,
			expectedRule: domain.RuleSessionContinuation,
		},
		{
			name: "continuation without a sleep category",
			input: domain.EffectiveDateInput{
				StartTime:    domaintest.TimeOfDay(t, "11:59"),
				CalendarDate: calendarDate,
			},
			expectedDate: yesterday,
			expectedRule: domain.RuleSessionContinuation,
		},
		{
			name: "morning activity after another activity today",
			input: domain.EffectiveDateInput{
				StartTime:                 domaintest.TimeOfDay(t, "02:00"),
				CalendarDate:              calendarDate,
				HasActivityOnCalendarDate: true,
			},
			expectedDate: calendarDate,
			expectedRule: domain.RuleCalendarFallback,
		},
		{
			name: "noon falls back to the calendar",
			input: domain.EffectiveDateInput{
				StartTime:    domaintest.TimeOfDay(t, "12:00"),
				CalendarDate: calendarDate,
			},
			expectedDate: calendarDate,
			expectedRule: domain.RuleCalendarFallback,
		},
		{
			name: "evening falls back to the calendar",
			input: domain.EffectiveDateInput{
				StartTime:        domaintest.TimeOfDay(t, "20:00"),
				CalendarDate:     calendarDate,
				RecentActivities: napOnly,
				SleepCategoryID:  sleepCategoryID,
			},
			expectedDate: calendarDate,
			expectedRule: domain.RuleCalendarFallback,
		},
		{
			name: "calendar date with a clock part",
			input: domain.EffectiveDateInput{
				StartTime:    domaintest.TimeOfDay(t, "15:00"),
				CalendarDate: calendarDate.Add(15 * time.Hour),
			},
			expectedDate: calendarDate,
			expectedRule: domain.RuleCalendarFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := domain.DecideEffectiveDate(tt.input)
			require.Equal(t, tt.expectedDate, decision.Date)
			require.Equal(t, tt.expectedRule, decision.Rule)

			require.Equal(t, tt.expectedDate, domain.AssignEffectiveDate(tt.input))
		})
	}

	t.Run("logging order changes borderline results", func(t *testing.T) {
		t.Parallel()

		// A 10:00 activity logged first continues yesterday's session ...
		first := domain.AssignEffectiveDate(domain.EffectiveDateInput{
			StartTime:    domaintest.TimeOfDay(t, "10:00"),
			CalendarDate: calendarDate,
		})
		require.Equal(t, yesterday, first)

		// ... but the same activity logged after something was stamped today does not
		second := domain.AssignEffectiveDate(domain.EffectiveDateInput{
			StartTime:                 domaintest.TimeOfDay(t, "10:00"),
			CalendarDate:              calendarDate,
			HasActivityOnCalendarDate: true,
		})
		require.Equal(t, calendarDate, second)
	})
}

func TestCurrentEffectiveDate(t *testing.T) {
	t.Parallel()

	sleepCategoryID := domaintest.SleepCategory()
	today := domaintest.Date(t, "2024-03-10")
	yesterday := domaintest.Date(t, "2024-03-09")
	tomorrow := domaintest.Date(t, "2024-03-11")

	sleepEndedToday := []domain.Activity{
		domaintest.NewActivity(t, "2024-03-09", "23:30", "07:15").AsSleep().Build(),
	}

	require.Equal(t, tomorrow, domain.CurrentEffectiveDate(today, &tomorrow, nil, sleepCategoryID, false))
	require.Equal(t, today, domain.CurrentEffectiveDate(today, nil, sleepEndedToday, sleepCategoryID, false))
	require.Equal(t, today, domain.CurrentEffectiveDate(today, nil, nil, sleepCategoryID, true))
	require.Equal(t, yesterday, domain.CurrentEffectiveDate(today, nil, nil, sleepCategoryID, false))
	require.Equal(t, yesterday, domain.CurrentEffectiveDate(today, nil, sleepEndedToday, nil, false))
}

func TestActiveOverride(t *testing.T) {
	t.Parallel()

	override := &domain.DayOverride{
		UserID:        "user-1",
		EffectiveDate: domaintest.Date(t, "2024-03-10"),
		CreatedAt:     domaintest.Timestamp(t, "2024-03-10", "01:30"),
	}

	require.Nil(t, domain.ActiveOverride(nil, domaintest.Date(t, "2024-03-10")))

	active := domain.ActiveOverride(override, domaintest.Date(t, "2024-03-09"))
	require.NotNil(t, active)
	require.Equal(t, domaintest.Date(t, "2024-03-10"), *active)

	active = domain.ActiveOverride(override, domaintest.Date(t, "2024-03-10"))
	require.NotNil(t, active)
	require.Equal(t, domaintest.Date(t, "2024-03-10"), *active)

	require.Nil(t, domain.ActiveOverride(override, domaintest.Date(t, "2024-03-11")))
}
