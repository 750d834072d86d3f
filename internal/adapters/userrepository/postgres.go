package userrepository

import (
	"context"
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
	db      *sqlx.DB
	schema  string
	tracer  trace.Tracer
	nowFunc func() time.Time
}

func NewPostgres(db *sqlx.DB, schema string, nowFunc func() time.Time) *Postgres {
	tracer := otel.Tracer("progressly/userrepository/postgres")
	return &Postgres{
		db:      db,
		schema:  schema,
		tracer:  tracer,
		nowFunc: nowFunc,
	}
}

type dbUser struct {
	UserID      string    `db:"user_id"`
	FirstSeenAt time.Time `db:"first_seen_at"`
	LastSeenAt  time.Time `db:"last_seen_at"`
	SeenCount   int64     `db:"seen_count"`
}

func (u dbUser) toDomain() domain.User {
	return domain.User{
		UserID:      u.UserID,
		FirstSeenAt: u.FirstSeenAt,
		LastSeenAt:  u.LastSeenAt,
		SeenCount:   u.SeenCount,
	}
}

func (p *Postgres) RegisterVisit(ctx context.Context, userID string) (domain.User, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.RegisterVisit")
	defer span.End()

	if userID == "" {
		err := fmt.Errorf("userID is empty")
		reporting.Report(ctx, err)
		return domain.User{}, err
	}

	now := p.nowFunc().UTC()

	var user dbUser
	err := p.db.QueryRowxContext(
		ctx,
		fmt.Sprintf(`INSERT INTO %s.users
		(user_id, first_seen_at, last_seen_at, seen_count)
		VALUES ($1, $2, $2, 1)
		ON CONFLICT (user_id)
		DO UPDATE SET
			last_seen_at = GREATEST(users.last_seen_at, EXCLUDED.last_seen_at),
			seen_count = users.seen_count + 1
		RETURNING user_id, first_seen_at, last_seen_at, seen_count`,
			pq.QuoteIdentifier(p.schema)),
		userID,
		now,
	).StructScan(&user)
	if err != nil {
		err := fmt.Errorf("failed to insert or update user: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"userID": userID,
		})
		return domain.User{}, err
	}

	return user.toDomain(), nil
}
