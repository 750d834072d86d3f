package ports

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/reporting"
)

// writeAppError maps an error returned by an app use-case to a response.
//
// Unexpected errors have already been reported where they happened.
func writeAppError(ctx context.Context, w http.ResponseWriter, err error, fallbackMessage string) {
	statusCode, message := http.StatusInternalServerError, fallbackMessage

	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		statusCode, message = http.StatusNotFound, "Activity not found"
	case errors.Is(err, domain.ErrCategoryNotFound):
		statusCode, message = http.StatusNotFound, "Category not found"
	case errors.Is(err, domain.ErrNotOwner):
		statusCode, message = http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrInvalidActivity), errors.Is(err, domain.ErrInvalidTimeOfDay):
		statusCode, message = http.StatusBadRequest, err.Error()
	}

	logging.FromContext(ctx).Info("Request failed", "statusCode", statusCode, "error", err.Error())

	http.Error(w, message, statusCode)
}

func writeJSON(w http.ResponseWriter, statusCode int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

// identifyUser reads the caller's identity and tags the request context with it.
//
// Requests without an identity are rejected with 401.
func identifyUser(w http.ResponseWriter, r *http.Request) (context.Context, string, bool) {
	ctx := r.Context()

	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		ctx = reporting.SetUserIDInContext(ctx, "<missing>")
		logging.FromContext(ctx).Info("Missing user id", "statusCode", http.StatusUnauthorized)
		http.Error(w, "Missing X-User-Id header", http.StatusUnauthorized)
		return ctx, "", false
	}

	ctx = reporting.SetUserIDInContext(ctx, userID)
	ctx = logging.AddMetaToContext(ctx, slog.String("userId", userID))
	return ctx, userID, true
}
