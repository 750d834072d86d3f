package categoryrepository

import (
	"context"

	"github.com/progressly/progressly-api/internal/adapters/cache"
	"github.com/progressly/progressly-api/internal/domain"
)

// cachedSleepCategory serves Sleep category lookups from a cache in front of another repository
//
// Only found ids are kept. A missing Sleep category is looked up again next time, since
// seeding may create it while a lookup is in flight.
type cachedSleepCategory struct {
	repo  CategoryRepository
	cache cache.Cache[*int64]
}

func NewCachedSleepCategoryRepository(repo CategoryRepository, sleepCache cache.Cache[*int64]) CategoryRepository {
	return &cachedSleepCategory{
		repo:  repo,
		cache: sleepCache,
	}
}

func (c *cachedSleepCategory) GetSleepCategoryID(ctx context.Context, userID string) (*int64, error) {
	sleepCategoryID, err := cache.GetOrCreate(ctx, c.cache, userID, func() (*int64, error) {
		return c.repo.GetSleepCategoryID(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	if sleepCategoryID == nil {
		cache.Invalidate(c.cache, userID)
	}
	return sleepCategoryID, nil
}

func (c *cachedSleepCategory) GetCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return c.repo.GetCategories(ctx, userID)
}

func (c *cachedSleepCategory) SeedDefaultCategories(ctx context.Context, userID string) error {
	err := c.repo.SeedDefaultCategories(ctx, userID)
	cache.Invalidate(c.cache, userID)
	return err
}
