package userrepository

import (
	"context"

	"github.com/progressly/progressly-api/internal/domain"
)

// UserRepository records which users have used the api, and when
type UserRepository interface {
	// RegisterVisit creates the user on their first visit, otherwise bumps last seen and the visit count
	RegisterVisit(ctx context.Context, userID string) (domain.User, error)
}
