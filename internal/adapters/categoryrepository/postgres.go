package categoryrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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
	tracer := otel.Tracer("progressly/categoryrepository/postgres")

	return &Postgres{
		db:     db,
		schema: schema,

		tracer: tracer,
	}
}

type dbCategory struct {
	ID        int64  `db:"id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Color     string `db:"color"`
	IsDefault bool   `db:"is_default"`
}

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

func (p *Postgres) GetSleepCategoryID(ctx context.Context, userID string) (*int64, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetSleepCategoryID")
	defer span.End()

	txx, err := p.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer txx.Rollback()

	var id int64
	err = txx.GetContext(
		ctx,
		&id,
		"SELECT id FROM categories WHERE user_id = $1 AND lower(name) = 'sleep' ORDER BY id ASC LIMIT 1",
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("failed to select sleep category: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	return &id, nil
}

func (p *Postgres) GetCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetCategories")
	defer span.End()

	txx, err := p.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer txx.Rollback()

	var rows []dbCategory
	err = txx.SelectContext(
		ctx,
		&rows,
		"SELECT id, user_id, name, color, is_default FROM categories WHERE user_id = $1 ORDER BY name ASC, id ASC",
		userID,
	)
	if err != nil {
		err := fmt.Errorf("failed to select categories: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return nil, err
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Name,
			Color:     row.Color,
			IsDefault: row.IsDefault,
		})
	}
	return categories, nil
}

func (p *Postgres) SeedDefaultCategories(ctx context.Context, userID string) error {
	ctx, span := p.tracer.Start(ctx, "Postgres.SeedDefaultCategories")
	defer span.End()

	txx, err := p.beginTx(ctx)
	if err != nil {
		return err
	}
	defer txx.Rollback()

	// Serialize seeding per user so concurrent first visits don't insert the defaults twice
	_, err = txx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "categories:"+userID)
	if err != nil {
		err := fmt.Errorf("failed to take seeding lock: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	var count int
	err = txx.GetContext(ctx, &count, "SELECT COUNT(*) FROM categories WHERE user_id = $1", userID)
	if err != nil {
		err := fmt.Errorf("failed to count categories: %w", err)
		reporting.Report(ctx, err)
		return err
	}
	if count > 0 {
		return nil
	}

	for _, category := range domain.DefaultCategories {
		_, err = txx.ExecContext(
			ctx,
			"INSERT INTO categories (user_id, name, color, is_default) VALUES ($1, $2, $3, $4)",
			userID,
			category.Name,
			category.Color,
			category.IsDefault,
		)
		if err != nil {
			err := fmt.Errorf("failed to insert default category: %w", err)
			reporting.Report(ctx, err, map[string]string{
				"category": category.Name,
			})
			return err
		}
	}

	err = txx.Commit()
	if err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	return nil
}
