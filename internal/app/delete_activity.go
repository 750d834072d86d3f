package app

import (
	"context"
	"fmt"

	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
)

type DeleteActivity = func(ctx context.Context, userID string, id int64) error

func BuildDeleteActivity(activityRepo activityrepository.ActivityRepository) DeleteActivity {
	return func(ctx context.Context, userID string, id int64) error {
		if _, err := getOwnedActivity(ctx, activityRepo, userID, id); err != nil {
			return err
		}

		if err := activityRepo.DeleteActivity(ctx, id); err != nil {
			// NOTE: ActivityRepository implementations handle their own error reporting
			return fmt.Errorf("failed to delete activity: %w", err)
		}
		return nil
	}
}
