package ports

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/reporting"
)

type logActivityRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	CategoryID *int64  `json:"categoryId" validate:"omitempty,gt=0"`
	StartTime  string  `json:"startTime" validate:"required,timeofday"`
	EndTime    string  `json:"endTime" validate:"required,timeofday"`
	Date       *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	EndDayDate *string `json:"endDayDate" validate:"omitempty,datetime=2006-01-02"`
}

type updateActivityRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	CategoryID *int64 `json:"categoryId" validate:"omitempty,gt=0"`
	StartTime  string `json:"startTime" validate:"required,timeofday"`
	EndTime    string `json:"endTime" validate:"required,timeofday"`
}

func parseTimes(rawStart, rawEnd string) (domain.TimeOfDay, domain.TimeOfDay, error) {
	start, err := domain.ParseTimeOfDay(rawStart)
	if err != nil {
		return domain.TimeOfDay{}, domain.TimeOfDay{}, err
	}
	end, err := domain.ParseTimeOfDay(rawEnd)
	if err != nil {
		return domain.TimeOfDay{}, domain.TimeOfDay{}, err
	}
	return start, end, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	date, err := domain.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (request logActivityRequest) toInput() (app.LogActivityInput, error) {
	start, end, err := parseTimes(request.StartTime, request.EndTime)
	if err != nil {
		return app.LogActivityInput{}, err
	}
	date, err := parseOptionalDate(request.Date)
	if err != nil {
		return app.LogActivityInput{}, err
	}
	endDayDate, err := parseOptionalDate(request.EndDayDate)
	if err != nil {
		return app.LogActivityInput{}, err
	}

	return app.LogActivityInput{
		Name:       request.Name,
		CategoryID: request.CategoryID,
		StartTime:  start,
		EndTime:    end,
		Date:       date,
		EndDayDate: endDayDate,
	}, nil
}

func (request updateActivityRequest) toInput() (app.UpdateActivityInput, error) {
	start, end, err := parseTimes(request.StartTime, request.EndTime)
	if err != nil {
		return app.UpdateActivityInput{}, err
	}

	return app.UpdateActivityInput{
		Name:       request.Name,
		CategoryID: request.CategoryID,
		StartTime:  start,
		EndTime:    end,
	}, nil
}

func parseActivityID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	rawID := r.PathValue("id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		logging.FromContext(r.Context()).Info("Invalid activity id", "rawID", rawID, "statusCode", http.StatusBadRequest)
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func MakeLogActivityHandler(
	logActivity app.LogActivity,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("logActivity", writeRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}
		defer r.Body.Close()

		var request logActivityRequest
		if err := decodeAndValidate(r, &request); err != nil {
			reporting.Report(ctx, fmt.Errorf("invalid log activity request: %w", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		input, err := request.toInput()
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert log activity request: %w", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx = logging.AddMetaToContext(ctx,
			slog.String("startTime", input.StartTime.String()),
			slog.String("endTime", input.EndTime.String()),
		)

		activity, err := logActivity(ctx, userID, input)
		if err != nil {
			// NOTE: LogActivity implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to log activity")
			return
		}

		marshalled, err := ActivityToResponseData(activity)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert activity to response: %w", err))
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, marshalled)
	}

	return middleware(handler)
}

func MakeUpdateActivityHandler(
	updateActivity app.UpdateActivity,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("updateActivity", writeRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}
		defer r.Body.Close()

		id, ok := parseActivityID(w, r.WithContext(ctx))
		if !ok {
			return
		}
		ctx = reporting.SetActivityIDInContext(ctx, id)
		ctx = logging.AddMetaToContext(ctx, slog.Int64("activityID", id))

		var request updateActivityRequest
		if err := decodeAndValidate(r, &request); err != nil {
			reporting.Report(ctx, fmt.Errorf("invalid update activity request: %w", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		input, err := request.toInput()
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert update activity request: %w", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		activity, err := updateActivity(ctx, userID, id, input)
		if err != nil {
			// NOTE: UpdateActivity implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to update activity")
			return
		}

		marshalled, err := ActivityToResponseData(activity)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to convert activity to response: %w", err))
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}

func MakeDeleteActivityHandler(
	deleteActivity app.DeleteActivity,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildHandlerMiddleware("deleteActivity", writeRateLimits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx, userID, ok := identifyUser(w, r)
		if !ok {
			return
		}

		id, ok := parseActivityID(w, r.WithContext(ctx))
		if !ok {
			return
		}
		ctx = reporting.SetActivityIDInContext(ctx, id)
		ctx = logging.AddMetaToContext(ctx, slog.Int64("activityID", id))

		if err := deleteActivity(ctx, userID, id); err != nil {
			// NOTE: DeleteActivity implementations handle their own error reporting
			writeAppError(ctx, w, err, "Failed to delete activity")
			return
		}

		logging.FromContext(ctx).Info("Deleted activity")

		w.WriteHeader(http.StatusNoContent)
	}

	return middleware(handler)
}
