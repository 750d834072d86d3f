package ports

import (
	"log/slog"
	"net/http"

	"github.com/progressly/progressly-api/internal/logging"
	"github.com/progressly/progressly-api/internal/ratelimiting"
	"github.com/progressly/progressly-api/internal/reporting"
)

func NewRateLimitMiddleware(rateLimiter ratelimiting.RequestRateLimiter, onLimitExceeded http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !rateLimiter.Consume(r) {
				onLimitExceeded(w, r)
				return
			}

			next(w, r)
		}
	}
}

func ComposeMiddlewares(middlewares ...func(http.HandlerFunc) http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	if len(middlewares) == 1 {
		return middlewares[0]
	}
	first := middlewares[0]
	rest := ComposeMiddlewares(middlewares[1:]...)
	return func(h http.HandlerFunc) http.HandlerFunc {
		return first(rest(h))
	}
}

type rateLimits struct {
	ipRefill   ratelimiting.RefillPerSecond
	ipBurst    ratelimiting.BurstSize
	userRefill ratelimiting.RefillPerSecond
	userBurst  ratelimiting.BurstSize
}

var (
	readRateLimits = rateLimits{
		ipRefill:   4,
		ipBurst:    80,
		userRefill: 2,
		userBurst:  40,
	}
	writeRateLimits = rateLimits{
		ipRefill:   2,
		ipBurst:    40,
		userRefill: 1,
		userBurst:  20,
	}
)

func makeOnLimitExceeded(rateLimiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx)

		statusCode := http.StatusTooManyRequests

		logger.Info("Rate limit exceeded", "statusCode", statusCode, "reason", "ratelimit exceeded", "key", rateLimiter.KeyFor(r))

		http.Error(w, "Rate limit exceeded", statusCode)
	}
}

// buildHandlerMiddleware is the middleware chain shared by every route
func buildHandlerMiddleware(
	route string,
	limits rateLimits,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) func(http.HandlerFunc) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.ipRefill, limits.ipBurst)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		ipLimiter,
		ratelimiting.IPKeyFunc,
	)
	userIDLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.userRefill, limits.userBurst)
	userIDRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		// NOTE: Rate limiting based on user controlled value
		userIDLimiter,
		ratelimiting.UserIDKeyFunc,
	)

	return ComposeMiddlewares(
		buildMetricsMiddleware(route),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware(route),
		BuildCORSMiddleware(allowedOrigins),
		NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter)),
		NewRateLimitMiddleware(userIDRateLimiter, makeOnLimitExceeded(userIDRateLimiter)),
	)
}
