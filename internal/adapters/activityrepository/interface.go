package activityrepository

import (
	"context"
	"time"

	"github.com/progressly/progressly-api/internal/domain"
)

// NOTE: ActivityRepository implementations handle their own error reporting
type ActivityRepository interface {
	// GetActivitiesInWindow returns the user's activities with activity_date in [from, to],
	// ordered by activity date, start time and id
	GetActivitiesInWindow(ctx context.Context, userID string, from, to time.Time) ([]domain.Activity, error)
	HasActivityWithEffectiveDate(ctx context.Context, userID string, date time.Time) (bool, error)
	// GetLatestActivity returns the user's most recently started activity, or nil if they have none
	GetLatestActivity(ctx context.Context, userID string) (*domain.Activity, error)

	// GetActivity returns domain.ErrActivityNotFound if there is no activity with the given id
	GetActivity(ctx context.Context, id int64) (domain.Activity, error)
	// StoreActivity inserts the activity and returns it with its assigned id
	StoreActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	// UpdateActivity overwrites name, category and times. The effective date is left untouched.
	UpdateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error
}
