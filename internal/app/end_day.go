package app

import (
	"context"
	"fmt"
	"time"

	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/adapters/overriderepository"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/userlock"
)

type EndDay = func(ctx context.Context, userID string) (time.Time, error)

// BuildEndDay closes the user's current psychological day. Activities logged afterwards
// belong to the following day until the calendar passes it.
func BuildEndDay(
	activityRepo activityrepository.ActivityRepository,
	categoryRepo categoryrepository.CategoryRepository,
	overrideRepo overriderepository.OverrideRepository,
	locker userlock.Locker,
	nowFunc func() time.Time,
) EndDay {
	return func(ctx context.Context, userID string) (time.Time, error) {
		unlock, err := locker.Lock(ctx, userID)
		if err != nil {
			return time.Time{}, err
		}
		defer unlock()

		now := nowFunc().UTC()
		today := domain.DateOf(now)

		state, err := loadDayState(ctx, activityRepo, categoryRepo, overrideRepo, userID, today)
		if err != nil {
			return time.Time{}, err
		}

		current := domain.CurrentEffectiveDate(
			today,
			state.override,
			state.recentActivities,
			state.sleepCategoryID,
			state.hasActivityOnCalendarDate,
		)
		next := domain.AddDays(current, 1)

		_, err = overrideRepo.StoreOverride(ctx, userID, next, now)
		if err != nil {
			// NOTE: OverrideRepository implementations handle their own error reporting
			return time.Time{}, fmt.Errorf("failed to store override: %w", err)
		}

		logging.FromContext(ctx).InfoContext(
			ctx,
			"Ended day",
			"endedDate", current.Format(domain.DateLayout),
			"effectiveDate", next.Format(domain.DateLayout),
		)

		return next, nil
	}
}
