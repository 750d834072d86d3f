package categoryrepository

import (
	"context"

	"github.com/progressly/progressly-api/internal/domain"
)

// NOTE: CategoryRepository implementations handle their own error reporting
type CategoryRepository interface {
	// GetSleepCategoryID returns the id of the user's Sleep category, or nil if the user has none
	GetSleepCategoryID(ctx context.Context, userID string) (*int64, error)
	GetCategories(ctx context.Context, userID string) ([]domain.Category, error)
	// SeedDefaultCategories stores the default categories for users that have no categories yet
	SeedDefaultCategories(ctx context.Context, userID string) error
}
