package domain_test

import (
	"testing"
	"time"

	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/domaintest"
	"github.com/stretchr/testify/require"
)

func TestDurationMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start    string
		end      string
		expected int
	}{
		{"23:00", "07:00", 480},
		{"09:00", "17:00", 480},
		{"12:34", "12:34", 0},
		{"00:00", "00:00", 0},
		{"00:00", "23:59", 1439},
		{"23:59", "00:00", 1},
		{"22:00", "06:30", 510},
		{"13:00", "14:30", 90},
		{"20:00", "13:00", 1020},
		// Partial minutes are truncated
		{"10:00:59", "10:01:00", 0},
		{"10:00:00", "10:01:59", 1},
		{"10:00:30", "10:00:10", 1439},
		{"23:59:59", "00:00:00", 0},
		{"00:00:00", "23:59:59", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			t.Parallel()

			start := domaintest.TimeOfDay(t, tt.start)
			end := domaintest.TimeOfDay(t, tt.end)

			require.Equal(t, tt.expected, domain.DurationMinutes(start, end))
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			raw    string
			hour   int
			minute int
			second int
		}{
			{"07:15", 7, 15, 0},
			{"00:00", 0, 0, 0},
			{"23:59:59", 23, 59, 59},
			{"12:30:05", 12, 30, 5},
		}

		for _, tt := range tests {
			t.Run(tt.raw, func(t *testing.T) {
				t.Parallel()

				tod, err := domain.ParseTimeOfDay(tt.raw)
				require.NoError(t, err)
				require.Equal(t, tt.hour, tod.Hour())
				require.Equal(t, tt.minute, tod.Minute())
				require.Equal(t, tt.second, tod.Second())
			})
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "24:00", "12:60", "noon", "12-30", "2024-01-01"} {
			t.Run(raw, func(t *testing.T) {
				t.Parallel()

				_, err := domain.ParseTimeOfDay(raw)
				require.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
			})
		}
	})
}

func TestNewTimeOfDay(t *testing.T) {
	t.Parallel()

	_, err := domain.NewTimeOfDay(24, 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)

	_, err = domain.NewTimeOfDay(-1, 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)

	tod, err := domain.NewTimeOfDay(6, 30, 0)
	require.NoError(t, err)
	require.Equal(t, "06:30:00", tod.String())
}

func TestTimeOfDayOn(t *testing.T) {
	t.Parallel()

	tod := domaintest.TimeOfDay(t, "07:15")

	require.Equal(t,
		time.Date(2024, time.March, 10, 7, 15, 0, 0, time.UTC),
		tod.On(domain.NewDate(2024, time.March, 10)),
	)

	// The clock part of the date is dropped
	require.Equal(t,
		time.Date(2024, time.March, 10, 7, 15, 0, 0, time.UTC),
		tod.On(time.Date(2024, time.March, 10, 18, 45, 0, 0, time.UTC)),
	)
}

func TestActivityTimestamps(t *testing.T) {
	t.Parallel()

	t.Run("same day", func(t *testing.T) {
		t.Parallel()

		activity := domaintest.NewActivity(t, "2024-03-10", "09:00", "17:00").Build()

		require.False(t, activity.CrossesMidnight())
		require.Equal(t, domaintest.Timestamp(t, "2024-03-10", "09:00"), activity.Start())
		require.Equal(t, domaintest.Timestamp(t, "2024-03-10", "17:00"), activity.End())
		require.Equal(t, 480, activity.DurationMinutes())
	})

	t.Run("crossing midnight", func(t *testing.T) {
		t.Parallel()

		activity := domaintest.NewActivity(t, "2024-02-29", "23:00", "07:00").Build()

		require.True(t, activity.CrossesMidnight())
		require.Equal(t, domaintest.Timestamp(t, "2024-02-29", "23:00"), activity.Start())
		require.Equal(t, domaintest.Timestamp(t, "2024-03-01", "07:00"), activity.End())
	})
}
