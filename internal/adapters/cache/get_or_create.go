package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/progressly/progressly-api/internal/logging"
)

// GetOrCreate returns the cached value for key, calling create on a miss
//
// Concurrent callers for the same key wait for the first caller instead of calling create.
// Failed creations are not cached.
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, error) {
	logger := logging.FromContext(ctx).With(slog.String("cacheKey", key))

	// Release a claimed entry we did not set so other callers can try again
	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			var empty T
			return empty, fmt.Errorf("cache: %w", err)
		}

		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true

			logger.DebugContext(ctx, "Cache lookup", "cache", "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, fmt.Errorf("failed to create cache entry: %w", err)
			}

			cache.set(key, data)
			set = true

			return data, nil
		}

		if result.valid {
			logger.DebugContext(ctx, "Cache lookup", "cache", "hit")
			return result.data, nil
		}

		cache.wait()
	}
}

// Invalidate drops key so the next lookup recreates it
func Invalidate[T any](cache Cache[T], key string) {
	cache.delete(key)
}
