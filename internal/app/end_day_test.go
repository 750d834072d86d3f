package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/domaintest"
	"github.com/progressly/progressly-api/internal/userlock"
)

func TestBuildEndDay(t *testing.T) {
	t.Parallel()

	t.Run("after waking up", func(t *testing.T) {
		t.Parallel()

		now := domaintest.Timestamp(t, "2024-03-10", "22:00")
		nowFunc := func() time.Time { return now }

		activityRepo := newFakeActivityRepository(
			domaintest.NewActivity(t, "2024-03-09", "23:00", "07:00").WithID(1).AsSleep().Build(),
		)
		categoryRepo := newFakeCategoryRepository(categoriesForUser("user-1")...)
		overrideRepo := &fakeOverrideRepository{}
		locker, stop := userlock.NewTTLLocker(time.Hour)
		defer stop()

		endDay := app.BuildEndDay(activityRepo, categoryRepo, overrideRepo, locker, nowFunc)

		next, err := endDay(t.Context(), "user-1")
		require.NoError(t, err)
		require.Equal(t, domaintest.Date(t, "2024-03-11"), next)

		require.Len(t, overrideRepo.overrides, 1)
		require.Equal(t, domain.DayOverride{
			UserID:        "user-1",
			EffectiveDate: domaintest.Date(t, "2024-03-11"),
			CreatedAt:     now,
		}, overrideRepo.overrides[0])

		// Activities logged before midnight now go to the next day
		now = domaintest.Timestamp(t, "2024-03-10", "23:30")
		logActivity := app.BuildLogActivity(activityRepo, categoryRepo, overrideRepo, locker, nowFunc)
		activity, err := logActivity(t.Context(), "user-1", app.LogActivityInput{
			Name:      "Journal",
			StartTime: domaintest.TimeOfDay(t, "23:15"),
			EndTime:   domaintest.TimeOfDay(t, "23:30"),
		})
		require.NoError(t, err)
		require.Equal(t, domaintest.Date(t, "2024-03-11"), *activity.EffectiveDate)
	})

	t.Run("still in yesterday's session", func(t *testing.T) {
		t.Parallel()

		endDay := app.BuildEndDay(
			newFakeActivityRepository(),
			newFakeCategoryRepository(categoriesForUser("user-1")...),
			&fakeOverrideRepository{},
			noopLocker{},
			func() time.Time { return domaintest.Timestamp(t, "2024-03-10", "01:00") },
		)

		next, err := endDay(t.Context(), "user-1")
		require.NoError(t, err)
		require.Equal(t, domaintest.Date(t, "2024-03-10"), next)
	})

	t.Run("ending twice advances again", func(t *testing.T) {
		t.Parallel()

		now := domaintest.Timestamp(t, "2024-03-10", "14:00")
		overrideRepo := &fakeOverrideRepository{}
		endDay := app.BuildEndDay(
			newFakeActivityRepository(domaintest.NewActivity(t, "2024-03-10", "09:00", "10:00").WithEffectiveDate("2024-03-10").Build()),
			newFakeCategoryRepository(categoriesForUser("user-1")...),
			overrideRepo,
			noopLocker{},
			func() time.Time {
				now = now.Add(time.Minute)
				return now
			},
		)

		next, err := endDay(t.Context(), "user-1")
		require.NoError(t, err)
		require.Equal(t, domaintest.Date(t, "2024-03-11"), next)

		next, err = endDay(t.Context(), "user-1")
		require.NoError(t, err)
		require.Equal(t, domaintest.Date(t, "2024-03-12"), next)
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()

		overrideRepo := &fakeOverrideRepository{err: errors.New("db down")}
		endDay := app.BuildEndDay(
			newFakeActivityRepository(),
			newFakeCategoryRepository(),
			overrideRepo,
			noopLocker{},
			func() time.Time { return domaintest.Timestamp(t, "2024-03-10", "14:00") },
		)

		_, err := endDay(t.Context(), "user-1")
		require.Error(t, err)
	})
}

func TestBuildGetCurrentEffectiveDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		now        string
		activities []domain.Activity
		overrides  []domain.DayOverride
		expected   string
	}{
		{
			name:     "nothing logged yet",
			now:      "08:00",
			expected: "2024-03-09",
		},
		{
			name: "woke up today",
			now:  "08:00",
			activities: []domain.Activity{
				domaintest.NewActivity(t, "2024-03-09", "23:00", "07:00").AsSleep().Build(),
			},
			expected: "2024-03-10",
		},
		{
			name: "something stamped today",
			now:  "15:00",
			activities: []domain.Activity{
				domaintest.NewActivity(t, "2024-03-10", "14:00", "15:00").WithEffectiveDate("2024-03-10").Build(),
			},
			expected: "2024-03-10",
		},
		{
			name: "active override",
			now:  "23:00",
			overrides: []domain.DayOverride{
				{UserID: "user-1", EffectiveDate: domaintest.Date(t, "2024-03-11"), CreatedAt: domaintest.Timestamp(t, "2024-03-10", "22:00")},
			},
			expected: "2024-03-11",
		},
		{
			name: "other user's override",
			now:  "23:00",
			overrides: []domain.DayOverride{
				{UserID: "user-2", EffectiveDate: domaintest.Date(t, "2024-03-11"), CreatedAt: domaintest.Timestamp(t, "2024-03-10", "22:00")},
			},
			expected: "2024-03-09",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getCurrentEffectiveDate := app.BuildGetCurrentEffectiveDate(
				newFakeActivityRepository(tc.activities...),
				newFakeCategoryRepository(categoriesForUser("user-1")...),
				&fakeOverrideRepository{overrides: tc.overrides},
				func() time.Time { return domaintest.Timestamp(t, "2024-03-10", tc.now) },
			)

			current, err := getCurrentEffectiveDate(t.Context(), "user-1")
			require.NoError(t, err)
			require.Equal(t, domaintest.Date(t, tc.expected), current)
		})
	}
}
