package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/adapters/cache"
	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/adapters/database"
	"github.com/progressly/progressly-api/internal/adapters/overriderepository"
	"github.com/progressly/progressly-api/internal/adapters/userrepository"
	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/config"
	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/ports"
	"github.com/progressly/progressly-api/internal/reporting"
	"github.com/progressly/progressly-api/internal/telemetry"
	"github.com/progressly/progressly-api/internal/userlock"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	// Trust store for minimal container images without system roots
	_ "golang.org/x/crypto/x509roots/fallback"
)

const serviceName = "progressly-api"

func main() {
	ctx := context.Background()

	instanceID := uuid.New().String()
	logger := slog.New(
		logging.NewTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil)),
	).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if config.OTelEnabled() {
		shutdownOTel, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			fail("Failed to initialize OpenTelemetry", "error", err.Error())
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(shutdownCtx); err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized OpenTelemetry")
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	logger.Info("Initializing database connection")
	db, err := database.NewPostgresDatabase(ctx, logger.With("component", "database"), config.DBConnectionString())
	if err != nil {
		fail("Failed to initialize database connection", "error", err.Error())
	}
	defer db.Close()
	logger.Info("Initialized database connection")

	repositorySchemaName := database.GetSchemaName(!config.IsProduction())

	err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, repositorySchemaName)
	if err != nil {
		fail("Failed to migrate database", "error", err.Error())
	}

	sleepCategoryCache, stopSleepCategoryCache := cache.NewTTLCache[*int64](config.SleepCategoryCacheTTL())
	defer stopSleepCategoryCache()

	activityRepo := activityrepository.NewPostgres(db, repositorySchemaName)
	categoryRepo := categoryrepository.NewCachedSleepCategoryRepository(
		categoryrepository.NewPostgres(db, repositorySchemaName),
		sleepCategoryCache,
	)
	overrideRepo := overriderepository.NewPostgres(db, repositorySchemaName)
	userRepo := userrepository.NewPostgres(db, repositorySchemaName, time.Now)
	logger.Info("Initialized repositories")

	locker, stopLocker := userlock.NewTTLLocker(10 * time.Minute)
	defer stopLocker()

	allowedOrigins, err := ports.NewDomainSuffixes(config.AllowedOriginSuffixes()...)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	getDayActivities := app.BuildGetDayActivities(activityRepo, categoryRepo)
	getDailySummary := app.BuildGetDailySummary(getDayActivities, categoryRepo)
	getCurrentEffectiveDate := app.BuildGetCurrentEffectiveDate(activityRepo, categoryRepo, overrideRepo, time.Now)
	logActivity := app.BuildLogActivity(activityRepo, categoryRepo, overrideRepo, locker, time.Now)
	updateActivity := app.BuildUpdateActivity(activityRepo, categoryRepo)
	deleteActivity := app.BuildDeleteActivity(activityRepo)
	endDay := app.BuildEndDay(activityRepo, categoryRepo, overrideRepo, locker, time.Now)
	getCategories := app.BuildGetCategories(categoryRepo)
	getLastEndTime := app.BuildGetLastEndTime(activityRepo)
	registerUserVisit := app.BuildRegisterUserVisit(userRepo, categoryRepo)

	http.HandleFunc(
		"OPTIONS /v1/days/current",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/days/current",
		ports.MakeGetCurrentDayHandler(
			getCurrentEffectiveDate,
			allowedOrigins,
			logger.With("port", "currentday"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/days/{date}",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/days/{date}",
		ports.MakeGetDayHandler(
			getDayActivities,
			allowedOrigins,
			logger.With("port", "day"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/days/{date}/summary",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/days/{date}/summary",
		ports.MakeGetDailySummaryHandler(
			getDailySummary,
			allowedOrigins,
			logger.With("port", "daysummary"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/activities",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"POST /v1/activities",
		ports.MakeLogActivityHandler(
			logActivity,
			allowedOrigins,
			logger.With("port", "logactivity"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/activities/{id}",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"PUT /v1/activities/{id}",
		ports.MakeUpdateActivityHandler(
			updateActivity,
			allowedOrigins,
			logger.With("port", "updateactivity"),
			sentryMiddleware,
		),
	)
	http.HandleFunc(
		"DELETE /v1/activities/{id}",
		ports.MakeDeleteActivityHandler(
			deleteActivity,
			allowedOrigins,
			logger.With("port", "deleteactivity"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/end-day",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"POST /v1/end-day",
		ports.MakeEndDayHandler(
			endDay,
			allowedOrigins,
			logger.With("port", "endday"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/categories",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/categories",
		ports.MakeGetCategoriesHandler(
			getCategories,
			allowedOrigins,
			logger.With("port", "categories"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/activities/last-end-time",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/activities/last-end-time",
		ports.MakeGetLastEndTimeHandler(
			getLastEndTime,
			allowedOrigins,
			logger.With("port", "lastendtime"),
			sentryMiddleware,
		),
	)

	handler := otelhttp.NewHandler(
		app.BuildRegisterUserVisitMiddleware(registerUserVisit)(http.DefaultServeMux.ServeHTTP),
		serviceName,
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), handler)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
