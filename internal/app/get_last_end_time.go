package app

import (
	"context"
	"fmt"

	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/domain"
)

// GetLastEndTime returns the end time of the user's latest activity, or nil if they have logged nothing
type GetLastEndTime = func(ctx context.Context, userID string) (*domain.TimeOfDay, error)

func BuildGetLastEndTime(activityRepo activityrepository.ActivityRepository) GetLastEndTime {
	return func(ctx context.Context, userID string) (*domain.TimeOfDay, error) {
		latest, err := activityRepo.GetLatestActivity(ctx, userID)
		if err != nil {
			// NOTE: ActivityRepository implementations handle their own error reporting
			return nil, fmt.Errorf("failed to get latest activity: %w", err)
		}
		if latest == nil {
			return nil, nil
		}

		endTime := latest.EndTime
		return &endTime, nil
	}
}
