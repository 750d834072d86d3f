package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/adapters/userrepository"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/reporting"
)

type RegisterUserVisit = func(ctx context.Context, userID string) (domain.User, error)

// BuildRegisterUserVisit records the visit and gives first-time users the default categories
func BuildRegisterUserVisit(
	userRepo userrepository.UserRepository,
	categoryRepo categoryrepository.CategoryRepository,
) RegisterUserVisit {
	return func(ctx context.Context, userID string) (domain.User, error) {
		user, err := userRepo.RegisterVisit(ctx, userID)
		if err != nil {
			// NOTE: UserRepository implementations handle their own error reporting
			return domain.User{}, fmt.Errorf("failed to register visit: %w", err)
		}

		if user.IsFirstVisit() {
			if err := categoryRepo.SeedDefaultCategories(ctx, userID); err != nil {
				// NOTE: CategoryRepository implementations handle their own error reporting
				return domain.User{}, fmt.Errorf("failed to seed default categories: %w", err)
			}
			logging.FromContext(ctx).InfoContext(ctx, "Registered new user", "userId", userID)
		}

		return user, nil
	}
}

// BuildRegisterUserVisitMiddleware registers a visit for every identified request without delaying it
func BuildRegisterUserVisitMiddleware(registerUserVisit RegisterUserVisit) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-Id")
			if userID != "" && r.Method != http.MethodOptions {
				go func() {
					// NOTE: The request context is cancelled when the response is written
					ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
					defer cancel()
					ctx = reporting.SetUserIDInContext(ctx, userID)

					_, _ = registerUserVisit(ctx, userID)
				}()
			}

			next(w, r)
		}
	}
}
