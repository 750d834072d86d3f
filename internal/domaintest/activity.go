package domaintest

import (
	"testing"
	"time"

	"github.com/progressly/progressly-api/internal/domain"
	"github.com/stretchr/testify/require"
)

const SleepCategoryID int64 = 13

func SleepCategory() *int64 {
	id := SleepCategoryID
	return &id
}

func TimeOfDay(t *testing.T, raw string) domain.TimeOfDay {
	t.Helper()
	tod, err := domain.ParseTimeOfDay(raw)
	require.NoError(t, err)
	return tod
}

func Date(t *testing.T, raw string) time.Time {
	t.Helper()
	date, err := domain.ParseDate(raw)
	require.NoError(t, err)
	return date
}

func Timestamp(t *testing.T, rawDate, rawTime string) time.Time {
	t.Helper()
	return TimeOfDay(t, rawTime).On(Date(t, rawDate))
}

type activityBuilder struct {
	t        *testing.T
	activity *domain.Activity
}

func (ab *activityBuilder) WithID(id int64) *activityBuilder {
	ab.activity.ID = id
	return ab
}

func (ab *activityBuilder) WithName(name string) *activityBuilder {
	ab.activity.Name = name
	return ab
}

func (ab *activityBuilder) WithUserID(userID string) *activityBuilder {
	ab.activity.UserID = userID
	return ab
}

func (ab *activityBuilder) WithCategory(categoryID int64) *activityBuilder {
	ab.activity.CategoryID = &categoryID
	return ab
}

func (ab *activityBuilder) AsSleep() *activityBuilder {
	return ab.WithCategory(SleepCategoryID).WithName("Sleep")
}

func (ab *activityBuilder) WithEffectiveDate(rawDate string) *activityBuilder {
	date := Date(ab.t, rawDate)
	ab.activity.EffectiveDate = &date
	return ab
}

func (ab *activityBuilder) Build() domain.Activity {
	return *ab.activity
}

// NewActivity builds an activity stored on rawDate running from rawStart to rawEnd
func NewActivity(t *testing.T, rawDate, rawStart, rawEnd string) *activityBuilder {
	t.Helper()
	activity := &domain.Activity{
		ID:           1,
		UserID:       "user-1",
		Name:         "Activity",
		StartTime:    TimeOfDay(t, rawStart),
		EndTime:      TimeOfDay(t, rawEnd),
		ActivityDate: Date(t, rawDate),
	}
	return &activityBuilder{t: t, activity: activity}
}
