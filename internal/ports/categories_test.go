package ports_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeGetCategoriesHandler(t *testing.T) {
	t.Parallel()

	allowedOrigins := testAllowedOrigins(t)

	t.Run("lists categories", func(t *testing.T) {
		t.Parallel()

		getCategories := func(ctx context.Context, userID string) ([]domain.Category, error) {
			require.Equal(t, testUserID, userID)
			return []domain.Category{
				{ID: 13, UserID: testUserID, Name: "Sleep", Color: "#6366f1", IsDefault: true},
				{ID: 1, UserID: testUserID, Name: "Work", Color: "#4f46e5", IsDefault: false},
			}, nil
		}

		handler := ports.MakeGetCategoriesHandler(getCategories, allowedOrigins, testLogger, noopMiddleware)
		w := serve(handler, newRequest(http.MethodGet, "/v1/categories", "", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[
			{"id": 13, "name": "Sleep", "color": "#6366f1", "isDefault": true},
			{"id": 1, "name": "Work", "color": "#4f46e5", "isDefault": false}
		]`, w.Body.String())
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		getCategories := func(ctx context.Context, userID string) ([]domain.Category, error) {
			return nil, assert.AnError
		}

		handler := ports.MakeGetCategoriesHandler(getCategories, allowedOrigins, testLogger, noopMiddleware)
		w := serve(handler, newRequest(http.MethodGet, "/v1/categories", "", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
