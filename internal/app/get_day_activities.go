package app

import (
	"context"
	"fmt"
	"time"

	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
	"golang.org/x/sync/errgroup"
)

type GetDayActivities = func(ctx context.Context, userID string, targetDate time.Time) (domain.DayBoundary, []domain.Activity, error)

func BuildGetDayActivities(
	activityRepo activityrepository.ActivityRepository,
	categoryRepo categoryrepository.CategoryRepository,
) GetDayActivities {
	return func(ctx context.Context, userID string, targetDate time.Time) (domain.DayBoundary, []domain.Activity, error) {
		targetDate = domain.DateOf(targetDate)

		var activities []domain.Activity
		var sleepCategoryID *int64

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			// The boundaries of targetDate can only be moved by sleeps stored between
			// the day before and two days after
			var err error
			activities, err = activityRepo.GetActivitiesInWindow(gctx, userID, domain.AddDays(targetDate, -1), domain.AddDays(targetDate, 2))
			if err != nil {
				// NOTE: ActivityRepository implementations handle their own error reporting
				return fmt.Errorf("failed to get activities: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			sleepCategoryID, err = categoryRepo.GetSleepCategoryID(gctx, userID)
			if err != nil {
				// NOTE: CategoryRepository implementations handle their own error reporting
				return fmt.Errorf("failed to get sleep category: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return domain.DayBoundary{}, nil, err
		}

		boundary := domain.ResolveBoundaries(activities, targetDate, sleepCategoryID)
		selected := domain.SelectForDay(activities, boundary)

		logging.FromContext(ctx).DebugContext(
			ctx,
			"Resolved psychological day",
			"targetDate", targetDate.Format(domain.DateLayout),
			"start", boundary.Start,
			"end", boundary.End,
			"activityCount", len(selected),
		)

		return boundary, selected, nil
	}
}
