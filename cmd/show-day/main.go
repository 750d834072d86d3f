// show-day prints one user's psychological day as the api would segment it.
//
//	show-day -user <id> -date 2024-03-10 [-conn <dsn>] [-schema progressly]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/progressly/progressly-api/internal/adapters/activityrepository"
	"github.com/progressly/progressly-api/internal/adapters/cache"
	"github.com/progressly/progressly-api/internal/adapters/categoryrepository"
	"github.com/progressly/progressly-api/internal/adapters/database"
	"github.com/progressly/progressly-api/internal/app"
	"github.com/progressly/progressly-api/internal/config"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/logging"
)

var (
	headerColor    = color.New(color.Bold, color.FgCyan)
	sleepColor     = color.New(color.FgBlue)
	straddleColor  = color.New(color.FgYellow)
	activityColor  = color.New(color.FgWhite)
	durationColor  = color.New(color.FgHiBlack)
	categoryColors = []*color.Color{
		color.New(color.FgGreen),
		color.New(color.FgMagenta),
		color.New(color.FgRed),
	}
)

func main() {
	userID := flag.String("user", "", "id of the user to show")
	rawDate := flag.String("date", "", "target date (YYYY-MM-DD)")
	connectionString := flag.String("conn", defaultConnectionString(), "postgres connection string")
	schema := flag.String("schema", database.GetSchemaName(false), "database schema")
	verbose := flag.Bool("v", false, "log database activity")
	flag.Parse()

	if *userID == "" || *rawDate == "" {
		flag.Usage()
		os.Exit(2)
	}

	targetDate, err := domain.ParseDate(*rawDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid date %q: %s\n", *rawDate, err)
		os.Exit(2)
	}

	logOutput := io.Discard
	if *verbose {
		logOutput = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOutput, nil))
	ctx := logging.AddToContext(context.Background(), logger)

	if err := run(ctx, logger, *connectionString, *schema, *userID, targetDate); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func defaultConnectionString() string {
	if connectionString := os.Getenv("DB_CONNECTION_STRING"); connectionString != "" {
		return connectionString
	}
	return config.LOCAL_CONNECTION_STRING
}

func run(ctx context.Context, logger *slog.Logger, connectionString, schema, userID string, targetDate time.Time) error {
	db, err := database.NewPostgresDatabase(ctx, logger, connectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	activityRepo := activityrepository.NewPostgres(db, schema)
	categoryRepo := categoryrepository.NewCachedSleepCategoryRepository(
		categoryrepository.NewPostgres(db, schema),
		cache.NewBasicCache[*int64](),
	)

	getDayActivities := app.BuildGetDayActivities(activityRepo, categoryRepo)
	getDailySummary := app.BuildGetDailySummary(getDayActivities, categoryRepo)

	boundary, activities, err := getDayActivities(ctx, userID, targetDate)
	if err != nil {
		return fmt.Errorf("failed to get day: %w", err)
	}

	sleepCategoryID, err := categoryRepo.GetSleepCategoryID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get sleep category: %w", err)
	}

	summary, err := getDailySummary(ctx, userID, targetDate)
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	printDay(os.Stdout, targetDate, boundary, activities, sleepCategoryID)
	printSummary(os.Stdout, summary)
	return nil
}

func printDay(w io.Writer, targetDate time.Time, boundary domain.DayBoundary, activities []domain.Activity, sleepCategoryID *int64) {
	const timestampLayout = "2006-01-02 15:04"

	headerColor.Fprintf(w, "Psychological day %s\n", targetDate.Format(domain.DateLayout))
	fmt.Fprintf(w, "  from %s to %s\n\n", boundary.Start.Format(timestampLayout), boundary.End.Format(timestampLayout))

	if len(activities) == 0 {
		durationColor.Fprintln(w, "  no activities")
		fmt.Fprintln(w)
		return
	}

	for _, activity := range activities {
		var markers []string
		lineColor := activityColor

		if activity.Start().Before(boundary.Start) || activity.End().After(boundary.End) {
			markers = append(markers, "straddles boundary")
			lineColor = straddleColor
		}
		if domain.IsNightSleep(activity, sleepCategoryID) {
			markers = append(markers, "night sleep")
			lineColor = sleepColor
		}

		line := fmt.Sprintf(
			"  %s  %s -> %s  %-30s",
			activity.ActivityDate.Format(domain.DateLayout),
			activity.StartTime,
			activity.EndTime,
			activity.Name,
		)
		lineColor.Fprint(w, line)
		durationColor.Fprintf(w, " %4d min", activity.DurationMinutes())
		if len(markers) > 0 {
			durationColor.Fprintf(w, "  (%s)", strings.Join(markers, ", "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, summary []domain.CategorySummary) {
	headerColor.Fprintln(w, "By category")

	if len(summary) == 0 {
		durationColor.Fprintln(w, "  nothing categorised")
		return
	}

	for i, entry := range summary {
		entryColor := durationColor
		if i < len(categoryColors) {
			entryColor = categoryColors[i]
		}
		entryColor.Fprintf(w, "  %-20s", entry.Name)
		fmt.Fprintf(w, " %2dh %02dm\n", entry.DurationMinutes/60, entry.DurationMinutes%60)
	}
}
