package ports

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/reporting"
)

func MakeGetDayHandler(
	getDayActivities app.GetDayActivities,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("day", readRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}

		rawDate := r.PathValue("date")
		targetDate, err := domain.ParseDate(rawDate)
		if err != nil {
			logging.FromContext(ctx).Info("Invalid date", "rawDate", rawDate, "statusCode", http.StatusBadRequest)
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		ctx = reporting.SetTargetDateInContext(ctx, targetDate)
		ctx = logging.AddMetaToContext(ctx, slog.String("targetDate", rawDate))

		boundary, activities, err := getDayActivities(ctx, userID, targetDate)
		if err != nil {
			// NOTE: GetDayActivities implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to get day")
			return
		}

		marshalled, err := DayToResponseData(targetDate, boundary, activities)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert day to response: %w", err), map[string]string{
				"length": strconv.Itoa(len(activities)),
			})
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		logging.FromContext(ctx).Info("Returning day", "activityCount", len(activities))

		writeJSON(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}

func MakeGetDailySummaryHandler(
	getDailySummary app.GetDailySummary,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("daySummary", readRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}

		rawDate := r.PathValue("date")
		targetDate, err := domain.ParseDate(rawDate)
		if err != nil {
			logging.FromContext(ctx).Info("Invalid date", "rawDate", rawDate, "statusCode", http.StatusBadRequest)
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		ctx = reporting.SetTargetDateInContext(ctx, targetDate)
		ctx = logging.AddMetaToContext(ctx, slog.String("targetDate", rawDate))

		summary, err := getDailySummary(ctx, userID, targetDate)
		if err != nil {
			// NOTE: GetDailySummary implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to get summary")
			return
		}

		marshalled, err := SummaryToResponseData(summary)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert summary to response: %w", err))
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}

func MakeGetCurrentDayHandler(
	getCurrentEffectiveDate app.GetCurrentEffectiveDate,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("currentDay", readRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}

		effectiveDate, err := getCurrentEffectiveDate(ctx, userID)
		if err != nil {
			// NOTE: GetCurrentEffectiveDate implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to get current day")
			return
		}

		marshalled, err := EffectiveDateToResponseData(effectiveDate)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert effective date to response: %w", err))
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}
