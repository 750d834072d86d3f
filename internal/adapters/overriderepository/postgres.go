package overriderepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/progressly/progressly-api/internal/domain"
	"github.com/progressly/progressly-api/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Postgres struct {
	db     *sqlx.DB
	schema string

	tracer trace.Tracer
}

func NewPostgres(db *sqlx.DB, schema string) *Postgres {
	tracer := otel.Tracer("progressly/overriderepository/postgres")

	return &Postgres{
		db:     db,
		schema: schema,

		tracer: tracer,
	}
}

type dbOverride struct {
	UserID        string    `db:"user_id"`
	EffectiveDate time.Time `db:"effective_date"`
	CreatedAt     time.Time `db:"created_at"`
}

func (p *Postgres) StoreOverride(ctx context.Context, userID string, effectiveDate time.Time, now time.Time) (domain.DayOverride, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.StoreOverride")
	defer span.End()

	extras := map[string]string{
		"effectiveDate": effectiveDate.Format(domain.DateLayout),
		"now":           now.Format(time.RFC3339),
	}

	txx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("failed to start transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.DayOverride{}, err
	}
	defer txx.Rollback()

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(p.schema)))
	if err != nil {
		err := fmt.Errorf("failed to set search path: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"schema": p.schema,
		})
		return domain.DayOverride{}, err
	}

	_, err = txx.ExecContext(
		ctx,
		"INSERT INTO day_overrides (user_id, effective_date, created_at) VALUES ($1, $2, $3)",
		userID,
		effectiveDate.Format(domain.DateLayout),
		now,
	)
	if err != nil {
		err := fmt.Errorf("failed to insert override: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.DayOverride{}, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err, extras)
		return domain.DayOverride{}, err
	}

	return domain.DayOverride{
		UserID:        userID,
		EffectiveDate: domain.DateOf(effectiveDate),
		CreatedAt:     now,
	}, nil
}

func (p *Postgres) GetLatestOverride(ctx context.Context, userID string) (*domain.DayOverride, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetLatestOverride")
	defer span.End()

	txx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("failed to start transaction: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}
	defer txx.Rollback()

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(p.schema)))
	if err != nil {
		err := fmt.Errorf("failed to set search path: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"schema": p.schema,
		})
		return nil, err
	}

	var row dbOverride
	err = txx.GetContext(
		ctx,
		&row,
		`SELECT user_id, effective_date, created_at
		FROM day_overrides
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("failed to select latest override: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	return &domain.DayOverride{
		UserID:        row.UserID,
		EffectiveDate: domain.DateOf(row.EffectiveDate),
		CreatedAt:     row.CreatedAt,
	}, nil
}
