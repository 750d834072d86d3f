package app

import (
	"context"
	"fmt"
	"time"

	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/adapters/overriderepository"
	"github.com/progressly/progressly-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// dayState is everything the effective date rules need to know about a user on one calendar date
type dayState struct {
	override                  *time.Time
	recentActivities          []domain.Activity
	sleepCategoryID           *int64
	hasActivityOnCalendarDate bool
}

func loadDayState(
	ctx context.Context,
	activityRepo activityrepository.ActivityRepository,
	categoryRepo categoryrepository.CategoryRepository,
	overrideRepo overriderepository.OverrideRepository,
	userID string,
	calendarDate time.Time,
) (dayState, error) {
	var state dayState

	// NOTE: Repository implementations handle their own error reporting
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		override, err := overrideRepo.GetLatestOverride(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get latest override: %w", err)
		}
		state.override = domain.ActiveOverride(override, calendarDate)
		return nil
	})
	g.Go(func() error {
		activities, err := activityRepo.GetActivitiesInWindow(gctx, userID, domain.AddDays(calendarDate, -1), calendarDate)
		if err != nil {
			return fmt.Errorf("failed to get recent activities: %w", err)
		}
		state.recentActivities = activities
		return nil
	})
	g.Go(func() error {
		sleepCategoryID, err := categoryRepo.GetSleepCategoryID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get sleep category: %w", err)
		}
		state.sleepCategoryID = sleepCategoryID
		return nil
	})
	g.Go(func() error {
		has, err := activityRepo.HasActivityWithEffectiveDate(gctx, userID, calendarDate)
		if err != nil {
			return fmt.Errorf("failed to check for activity on calendar date: %w", err)
		}
		state.hasActivityOnCalendarDate = has
		return nil
	})
	if err := g.Wait(); err != nil {
		return dayState{}, err
	}

	return state, nil
}

type GetCurrentEffectiveDate = func(ctx context.Context, userID string) (time.Time, error)

func BuildGetCurrentEffectiveDate(
	activityRepo activityrepository.ActivityRepository,
	categoryRepo categoryrepository.CategoryRepository,
	overrideRepo overriderepository.OverrideRepository,
	nowFunc func() time.Time,
) GetCurrentEffectiveDate {
	return func(ctx context.Context, userID string) (time.Time, error) {
		today := domain.DateOf(nowFunc().UTC())

		state, err := loadDayState(ctx, activityRepo, categoryRepo, overrideRepo, userID, today)
		if err != nil {
			return time.Time{}, err
		}

		return domain.CurrentEffectiveDate(
			today,
			state.override,
			state.recentActivities,
			state.sleepCategoryID,
			state.hasActivityOnCalendarDate,
		), nil
	}
}
