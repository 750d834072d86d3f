package ports

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/reporting"
)

// MakeGetLastEndTimeHandler serves the end of the user's latest activity so the next one can start there
func MakeGetLastEndTimeHandler(
	getLastEndTime app.GetLastEndTime,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("lastEndTime", readRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}

		endTime, err := getLastEndTime(ctx, userID)
		if err != nil {
			// NOTE: GetLastEndTime implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to get last end time")
			return
		}

		marshalled, err := LastEndTimeToResponseData(endTime)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert last end time to response: %w", err))
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}
