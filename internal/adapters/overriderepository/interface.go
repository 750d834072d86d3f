package overriderepository

import (
	"context"
	"time"

	"github.com/progressly/progressly-api/internal/domain"
)

// NOTE: OverrideRepository implementations handle their own error reporting
type OverrideRepository interface {
	StoreOverride(ctx context.Context, userID string, effectiveDate time.Time, now time.Time) (domain.DayOverride, error)
	// GetLatestOverride returns the most recently created override, or nil if the user never ended a day manually
	GetLatestOverride(ctx context.Context, userID string) (*domain.DayOverride, error)
}
