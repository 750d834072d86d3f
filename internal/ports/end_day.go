package ports

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/reporting"
)

func MakeEndDayHandler(
	endDay app.EndDay,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("endDay", writeRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}

		newDate, err := endDay(ctx, userID)
		if err != nil {
			// NOTE: EndDay implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to end day")
			return
		}

		marshalled, err := EffectiveDateToResponseData(newDate)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert effective date to response: %w", err))
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}
