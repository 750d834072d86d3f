package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/adapters/overriderepository"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/userlock"
)

type LogActivityInput struct {
	Name       string
	CategoryID *int64
	StartTime  domain.TimeOfDay
	EndTime    domain.TimeOfDay
	// Calendar date to store the activity under. Defaults to today.
	Date *time.Time
	// Explicit "End Day" choice made while logging. Takes priority over stored overrides.
	EndDayDate *time.Time
}

type LogActivity = func(ctx context.Context, userID string, input LogActivityInput) (domain.Activity, error)

func BuildLogActivity(
	activityRepo activityrepository.ActivityRepository,
	categoryRepo categoryrepository.CategoryRepository,
	overrideRepo overriderepository.OverrideRepository,
	locker userlock.Locker,
	nowFunc func() time.Time,
) LogActivity {
	return func(ctx context.Context, userID string, input LogActivityInput) (domain.Activity, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return domain.Activity{}, fmt.Errorf("%w: name is required", domain.ErrInvalidActivity)
		}

		if err := checkCategoryOwnership(ctx, categoryRepo, userID, input.CategoryID); err != nil {
			return domain.Activity{}, err
		}

		// Assignment reads the user's other activities, so concurrent logs must not interleave
		unlock, err := locker.Lock(ctx, userID)
		if err != nil {
			return domain.Activity{}, err
		}
		defer unlock()

		today := domain.DateOf(nowFunc().UTC())

		state, err := loadDayState(ctx, activityRepo, categoryRepo, overrideRepo, userID, today)
		if err != nil {
			return domain.Activity{}, err
		}

		manualOverride := state.override
		if input.EndDayDate != nil {
			endDayDate := domain.DateOf(*input.EndDayDate)
			manualOverride = &endDayDate
		}

		decision := domain.DecideEffectiveDate(domain.EffectiveDateInput{
			StartTime:                 input.StartTime,
			CalendarDate:              today,
			ManualOverride:            manualOverride,
			RecentActivities:          state.recentActivities,
			SleepCategoryID:           state.sleepCategoryID,
			HasActivityOnCalendarDate: state.hasActivityOnCalendarDate,
		})

		activityDate := today
		if input.Date != nil {
			activityDate = domain.DateOf(*input.Date)
		}

		activity := domain.Activity{
			UserID:        userID,
			Name:          name,
			CategoryID:    input.CategoryID,
			StartTime:     input.StartTime,
			EndTime:       input.EndTime,
			ActivityDate:  activityDate,
			EffectiveDate: &decision.Date,
		}

		stored, err := activityRepo.StoreActivity(ctx, activity)
		if err != nil {
			// NOTE: ActivityRepository implementations handle their own error reporting
			return domain.Activity{}, fmt.Errorf("failed to store activity: %w", err)
		}

		logging.FromContext(ctx).InfoContext(
			ctx,
			"Logged activity",
			"activityID", stored.ID,
			"rule", string(decision.Rule),
			"effectiveDate", decision.Date.Format(domain.DateLayout),
			"activityDate", activityDate.Format(domain.DateLayout),
		)

		return stored, nil
	}
}

func checkCategoryOwnership(
	ctx context.Context,
	categoryRepo categoryrepository.CategoryRepository,
	userID string,
	categoryID *int64,
) error {
	if categoryID == nil {
		return nil
	}

	categories, err := categoryRepo.GetCategories(ctx, userID)
	if err != nil {
		// NOTE: CategoryRepository implementations handle their own error reporting
		return fmt.Errorf("failed to get categories: %w", err)
	}

	if !slices.ContainsFunc(categories, func(category domain.Category) bool {
		return category.ID == *categoryID
	}) {
		return fmt.Errorf("%w: %d", domain.ErrCategoryNotFound, *categoryID)
	}
	return nil
}
