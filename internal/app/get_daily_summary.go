package app

import (
	"context"
	"fmt"
	"time"

	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/domain"
)

type GetDailySummary = func(ctx context.Context, userID string, targetDate time.Time) ([]domain.CategorySummary, error)

func BuildGetDailySummary(
	getDayActivities GetDayActivities,
	categoryRepo categoryrepository.CategoryRepository,
) GetDailySummary {
	return func(ctx context.Context, userID string, targetDate time.Time) ([]domain.CategorySummary, error) {
		_, activities, err := getDayActivities(ctx, userID, targetDate)
		if err != nil {
			return nil, err
		}

		categories, err := categoryRepo.GetCategories(ctx, userID)
		if err != nil {
			// NOTE: CategoryRepository implementations handle their own error reporting
			return nil, fmt.Errorf("failed to get categories: %w", err)
		}

		return domain.SummarizeByCategory(activities, categories), nil
	}
}
