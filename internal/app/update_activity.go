package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/domain"
)

type UpdateActivityInput struct {
	Name       string
	CategoryID *int64
	StartTime  domain.TimeOfDay
	EndTime    domain.TimeOfDay
}

type UpdateActivity = func(ctx context.Context, userID string, id int64, input UpdateActivityInput) (domain.Activity, error)

// BuildUpdateActivity edits an activity in place.
//
// The effective date is kept as assigned when the activity was logged.
func BuildUpdateActivity(
	activityRepo activityrepository.ActivityRepository,
	categoryRepo categoryrepository.CategoryRepository,
) UpdateActivity {
	return func(ctx context.Context, userID string, id int64, input UpdateActivityInput) (domain.Activity, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return domain.Activity{}, fmt.Errorf("%w: name is required", domain.ErrInvalidActivity)
		}

		existing, err := getOwnedActivity(ctx, activityRepo, userID, id)
		if err != nil {
			return domain.Activity{}, err
		}

		if err := checkCategoryOwnership(ctx, categoryRepo, userID, input.CategoryID); err != nil {
			return domain.Activity{}, err
		}

		existing.Name = name
		existing.CategoryID = input.CategoryID
		existing.StartTime = input.StartTime
		existing.EndTime = input.EndTime

		updated, err := activityRepo.UpdateActivity(ctx, existing)
		if err != nil {
			// NOTE: ActivityRepository implementations handle their own error reporting
			return domain.Activity{}, fmt.Errorf("failed to update activity: %w", err)
		}
		return updated, nil
	}
}

func getOwnedActivity(ctx context.Context, activityRepo activityrepository.ActivityRepository, userID string, id int64) (domain.Activity, error) {
	activity, err := activityRepo.GetActivity(ctx, id)
	if err != nil {
		// NOTE: ActivityRepository implementations handle their own error reporting
		return domain.Activity{}, fmt.Errorf("failed to get activity: %w", err)
	}

	if activity.UserID != userID {
		return domain.Activity{}, fmt.Errorf("%w: activity %d", domain.ErrNotOwner, id)
	}
	return activity, nil
}
