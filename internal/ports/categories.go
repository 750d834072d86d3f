package ports

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/reporting"
)

func MakeGetCategoriesHandler(
	getCategories app.GetCategories,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("categories", readRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}

		categories, err := getCategories(ctx, userID)
		if err != nil {
			// NOTE: GetCategories implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to get categories")
			return
		}

		marshalled, err := CategoriesToResponseData(categories)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert categories to response: %w", err))
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}
