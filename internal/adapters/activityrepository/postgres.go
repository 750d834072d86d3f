package activityrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var activityColumns = []string{
	"id",
	"user_id",
	"activity_name",
	"category_id",
	"start_time::text AS start_time",
	"end_time::text AS end_time",
	"activity_date",
	"effective_date",
}

type Postgres struct {
	db     *sqlx.DB
	schema string

	tracer trace.Tracer
}

func NewPostgres(db *sqlx.DB, schema string) *Postgres {
	tracer := otel.Tracer("progressly/activityrepository/postgres")

	return &Postgres{
		db:     db,
		schema: schema,

		tracer: tracer,
	}
}

type dbActivity struct {
	ID            int64         `db:"id"`
	UserID        string        `db:"user_id"`
	Name          string        `db:"activity_name"`
	CategoryID    sql.NullInt64 `db:"category_id"`
	StartTime     string        `db:"start_time"`
	EndTime       string        `db:"end_time"`
	ActivityDate  time.Time     `db:"activity_date"`
	EffectiveDate sql.NullTime  `db:"effective_date"`
}

func (a dbActivity) toDomain() (domain.Activity, error) {
	start, err := domain.ParseTimeOfDay(a.StartTime)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("failed to parse start time: %w", err)
	}
	end, err := domain.ParseTimeOfDay(a.EndTime)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("failed to parse end time: %w", err)
	}

	activity := domain.Activity{
		ID:           a.ID,
		UserID:       a.UserID,
		Name:         a.Name,
		StartTime:    start,
		EndTime:      end,
		ActivityDate: domain.DateOf(a.ActivityDate),
	}
	if a.CategoryID.Valid {
		categoryID := a.CategoryID.Int64
		activity.CategoryID = &categoryID
	}
	if a.EffectiveDate.Valid {
		effectiveDate := domain.DateOf(a.EffectiveDate.Time)
		activity.EffectiveDate = &effectiveDate
	}
	return activity, nil
}

func nullableDate(date *time.Time) any {
	if date == nil {
		return nil
	}
	return date.Format(domain.DateLayout)
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// beginTx starts a transaction scoped to the repository schema
func (p *Postgres) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	txx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("failed to start transaction: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(p.schema)))
	if err != nil {
		_ = txx.Rollback()
		err := fmt.Errorf("failed to set search path: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"schema": p.schema,
		})
		return nil, err
	}

	return txx, nil
}

func (p *Postgres) GetActivitiesInWindow(ctx context.Context, userID string, from, to time.Time) ([]domain.Activity, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetActivitiesInWindow")
	defer span.End()
	span.SetAttributes(
		attribute.String("from", from.Format(domain.DateLayout)),
		attribute.String("to", to.Format(domain.DateLayout)),
	)

	extras := map[string]string{
		"from": from.Format(domain.DateLayout),
		"to":   to.Format(domain.DateLayout),
	}

	query, args, err := psql.
		Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"activity_date": from.Format(domain.DateLayout)}).
		Where(squirrel.LtOrEq{"activity_date": to.Format(domain.DateLayout)}).
		OrderBy("activities.activity_date ASC", "activities.start_time ASC", "activities.id ASC").
		ToSql()
	if err != nil {
		err := fmt.Errorf("failed to build window query: %w", err)
		reporting.Report(ctx, err, extras)
		return nil, err
	}

	txx, err := p.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer txx.Rollback()

	var rows []dbActivity
	err = txx.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		err := fmt.Errorf("failed to select activities: %w", err)
		reporting.Report(ctx, err, extras)
		return nil, err
	}

	activities := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		activity, err := row.toDomain()
		if err != nil {
			err := fmt.Errorf("failed to convert activity %d: %w", row.ID, err)
			reporting.Report(ctx, err, extras)
			return nil, err
		}
		activities = append(activities, activity)
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return nil, err
	}

	return activities, nil
}

func (p *Postgres) HasActivityWithEffectiveDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.HasActivityWithEffectiveDate")
	defer span.End()

	extras := map[string]string{
		"date": date.Format(domain.DateLayout),
	}

	txx, err := p.beginTx(ctx)
	if err != nil {
		return false, err
	}
	defer txx.Rollback()

	var exists bool
	err = txx.GetContext(
		ctx,
		&exists,
		"SELECT EXISTS (SELECT 1 FROM activities WHERE user_id = $1 AND effective_date = $2)",
		userID,
		date.Format(domain.DateLayout),
	)
	if err != nil {
		err := fmt.Errorf("failed to check for activity with effective date: %w", err)
		reporting.Report(ctx, err, extras)
		return false, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return false, err
	}

	return exists, nil
}

func (p *Postgres) GetLatestActivity(ctx context.Context, userID string) (*domain.Activity, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetLatestActivity")
	defer span.End()

	query, args, err := psql.
		Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("activities.activity_date DESC", "activities.start_time DESC", "activities.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		err := fmt.Errorf("failed to build latest activity query: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	txx, err := p.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer txx.Rollback()

	var row dbActivity
	err = txx.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("failed to select latest activity: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	activity, err := row.toDomain()
	if err != nil {
		err := fmt.Errorf("failed to convert activity: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	return &activity, nil
}

func (p *Postgres) GetActivity(ctx context.Context, id int64) (domain.Activity, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetActivity")
	defer span.End()

	extras := map[string]string{
		"activityID": strconv.FormatInt(id, 10),
	}

	query, args, err := psql.
		Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		err := fmt.Errorf("failed to build activity query: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	txx, err := p.beginTx(ctx)
	if err != nil {
		return domain.Activity{}, err
	}
	defer txx.Rollback()

	var row dbActivity
	err = txx.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Activity{}, fmt.Errorf("%w: %d", domain.ErrActivityNotFound, id)
	} else if err != nil {
		err := fmt.Errorf("failed to select activity: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	activity, err := row.toDomain()
	if err != nil {
		err := fmt.Errorf("failed to convert activity: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	return activity, nil
}

func (p *Postgres) StoreActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.StoreActivity")
	defer span.End()

	extras := map[string]string{
		"activityDate": activity.ActivityDate.Format(domain.DateLayout),
		"startTime":    activity.StartTime.String(),
		"endTime":      activity.EndTime.String(),
	}

	query, args, err := psql.
		Insert("activities").
		Columns("user_id", "activity_name", "category_id", "start_time", "end_time", "activity_date", "effective_date").
		Values(
			activity.UserID,
			activity.Name,
			nullableID(activity.CategoryID),
			activity.StartTime.String(),
			activity.EndTime.String(),
			activity.ActivityDate.Format(domain.DateLayout),
			nullableDate(activity.EffectiveDate),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		err := fmt.Errorf("failed to build insert query: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	txx, err := p.beginTx(ctx)
	if err != nil {
		return domain.Activity{}, err
	}
	defer txx.Rollback()

	var id int64
	err = txx.QueryRowxContext(ctx, query, args...).Scan(&id)
	if err != nil {
		err := fmt.Errorf("failed to insert activity: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	activity.ID = id
	return activity, nil
}

func (p *Postgres) UpdateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.UpdateActivity")
	defer span.End()

	extras := map[string]string{
		"activityID": strconv.FormatInt(activity.ID, 10),
	}

	query, args, err := psql.
		Update("activities").
		Set("activity_name", activity.Name).
		Set("category_id", nullableID(activity.CategoryID)).
		Set("start_time", activity.StartTime.String()).
		Set("end_time", activity.EndTime.String()).
		Where(squirrel.Eq{"id": activity.ID}).
		Suffix("RETURNING " + strings.Join(activityColumns, ", ")).
		ToSql()
	if err != nil {
		err := fmt.Errorf("failed to build update query: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	txx, err := p.beginTx(ctx)
	if err != nil {
		return domain.Activity{}, err
	}
	defer txx.Rollback()

	var row dbActivity
	err = txx.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Activity{}, fmt.Errorf("%w: %d", domain.ErrActivityNotFound, activity.ID)
	} else if err != nil {
		err := fmt.Errorf("failed to update activity: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	updated, err := row.toDomain()
	if err != nil {
		err := fmt.Errorf("failed to convert activity: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.Activity{}, err
	}

	return updated, nil
}

func (p *Postgres) DeleteActivity(ctx context.Context, id int64) error {
	ctx, span := p.tracer.Start(ctx, "Postgres.DeleteActivity")
	defer span.End()

	extras := map[string]string{
		"activityID": strconv.FormatInt(id, 10),
	}

	txx, err := p.beginTx(ctx)
	if err != nil {
		return err
	}
	defer txx.Rollback()

	result, err := txx.ExecContext(ctx, "DELETE FROM activities WHERE id = $1", id)
	if err != nil {
		err := fmt.Errorf("failed to delete activity: %w", err)
		reporting.Report(ctx, err, extras)
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("failed to read affected rows: %w", err)
		reporting.Report(ctx, err, extras)
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", domain.ErrActivityNotFound, id)
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return err
	}

	return nil
}
