package app

import (
	"context"
	"fmt"

	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/domain"
)

type GetCategories = func(ctx context.Context, userID string) ([]domain.Category, error)

func BuildGetCategories(categoryRepo categoryrepository.CategoryRepository) GetCategories {
	return func(ctx context.Context, userID string) ([]domain.Category, error) {
		// NOTE: CategoryRepository implementations handle their own error reporting
		if err := categoryRepo.SeedDefaultCategories(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to seed default categories: %w", err)
		}

		categories, err := categoryRepo.GetCategories(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get categories: %w", err)
		}
		return categories, nil
	}
}
