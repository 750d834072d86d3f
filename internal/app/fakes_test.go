package app_test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/progressly/progressly-api/internal/domain"
)

type fakeActivityRepository struct {
	mutex      sync.Mutex
	activities []domain.Activity
	nextID     int64
	err        error
}

func newFakeActivityRepository(activities ...domain.Activity) *fakeActivityRepository {
	repo := &fakeActivityRepository{nextID: 1}
	for _, activity := range activities {
		repo.activities = append(repo.activities, activity)
		repo.nextID = max(repo.nextID, activity.ID+1)
	}
	return repo
}

func (r *fakeActivityRepository) GetActivitiesInWindow(ctx context.Context, userID string, from, to time.Time) ([]domain.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	result := []domain.Activity{}
	for _, activity := range r.activities {
		if activity.UserID != userID {
			continue
		}
		if activity.ActivityDate.Before(domain.DateOf(from)) || activity.ActivityDate.After(domain.DateOf(to)) {
			continue
		}
		result = append(result, activity)
	}
	slices.SortStableFunc(result, func(a, b domain.Activity) int {
		if c := a.ActivityDate.Compare(b.ActivityDate); c != 0 {
			return c
		}
		if a.StartTime.Before(b.StartTime) {
			return -1
		}
		if b.StartTime.Before(a.StartTime) {
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r *fakeActivityRepository) HasActivityWithEffectiveDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return false, r.err
	}

	return slices.ContainsFunc(r.activities, func(activity domain.Activity) bool {
		return activity.UserID == userID && activity.EffectiveDate != nil && activity.EffectiveDate.Equal(domain.DateOf(date))
	}), nil
}

func (r *fakeActivityRepository) GetLatestActivity(ctx context.Context, userID string) (*domain.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var latest *domain.Activity
	for _, activity := range r.activities {
		if activity.UserID != userID {
			continue
		}
		if latest == nil || activity.Start().After(latest.Start()) ||
			(activity.Start().Equal(latest.Start()) && activity.ID > latest.ID) {
			found := activity
			latest = &found
		}
	}
	return latest, nil
}

func (r *fakeActivityRepository) GetActivity(ctx context.Context, id int64) (domain.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return domain.Activity{}, r.err
	}

	for _, activity := range r.activities {
		if activity.ID == id {
			return activity, nil
		}
	}
	return domain.Activity{}, fmt.Errorf("%w: %d", domain.ErrActivityNotFound, id)
}

func (r *fakeActivityRepository) StoreActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return domain.Activity{}, r.err
	}

	activity.ID = r.nextID
	r.nextID++
	r.activities = append(r.activities, activity)
	return activity, nil
}

func (r *fakeActivityRepository) UpdateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return domain.Activity{}, r.err
	}

	for i, existing := range r.activities {
		if existing.ID != activity.ID {
			continue
		}
		existing.Name = activity.Name
		existing.CategoryID = activity.CategoryID
		existing.StartTime = activity.StartTime
		existing.EndTime = activity.EndTime
		r.activities[i] = existing
		return existing, nil
	}
	return domain.Activity{}, fmt.Errorf("%w: %d", domain.ErrActivityNotFound, activity.ID)
}

func (r *fakeActivityRepository) DeleteActivity(ctx context.Context, id int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return r.err
	}

	for i, existing := range r.activities {
		if existing.ID == id {
			r.activities = slices.Delete(r.activities, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", domain.ErrActivityNotFound, id)
}

type fakeCategoryRepository struct {
	mutex      sync.Mutex
	categories []domain.Category
	seeded     map[string]bool
	err        error
}

func newFakeCategoryRepository(categories ...domain.Category) *fakeCategoryRepository {
	return &fakeCategoryRepository{
		categories: categories,
		seeded:     map[string]bool{},
	}
}

func (r *fakeCategoryRepository) GetSleepCategoryID(ctx context.Context, userID string) (*int64, error) {
	categories, err := r.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.FindSleepCategoryID(categories), nil
}

func (r *fakeCategoryRepository) GetCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	result := []domain.Category{}
	for _, category := range r.categories {
		if category.UserID == userID {
			result = append(result, category)
		}
	}
	slices.SortStableFunc(result, func(a, b domain.Category) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (r *fakeCategoryRepository) SeedDefaultCategories(ctx context.Context, userID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return r.err
	}

	for _, category := range r.categories {
		if category.UserID == userID {
			return nil
		}
	}
	r.seeded[userID] = true
	for _, category := range domain.DefaultCategories {
		category.ID = int64(len(r.categories) + 100)
		category.UserID = userID
		r.categories = append(r.categories, category)
	}
	return nil
}

type fakeOverrideRepository struct {
	mutex     sync.Mutex
	overrides []domain.DayOverride
	err       error
}

func (r *fakeOverrideRepository) StoreOverride(ctx context.Context, userID string, effectiveDate time.Time, now time.Time) (domain.DayOverride, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return domain.DayOverride{}, r.err
	}

	override := domain.DayOverride{UserID: userID, EffectiveDate: domain.DateOf(effectiveDate), CreatedAt: now}
	r.overrides = append(r.overrides, override)
	return override, nil
}

func (r *fakeOverrideRepository) GetLatestOverride(ctx context.Context, userID string) (*domain.DayOverride, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var latest *domain.DayOverride
	for i := range r.overrides {
		override := r.overrides[i]
		if override.UserID != userID {
			continue
		}
		if latest == nil || !override.CreatedAt.Before(latest.CreatedAt) {
			latest = &override
		}
	}
	return latest, nil
}

type noopLocker struct{}

func (noopLocker) Lock(ctx context.Context, userID string) (func(), error) {
	return func() {}, nil
}

func categoriesForUser(userID string) []domain.Category {
	return []domain.Category{
		{ID: 1, UserID: userID, Name: "Work", Color: "#3b82f6"},
		{ID: 2, UserID: userID, Name: "Study", Color: "#22c55e"},
		{ID: 13, UserID: userID, Name: "Sleep", Color: "#4f46e5"},
	}
}
