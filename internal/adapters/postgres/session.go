package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlsearch"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by the repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Session adapts a Querier to sqlsearch.Session.
type Session struct {
	q Querier
}

var _ sqlsearch.Session = Session{}

func NewSession(q Querier) Session { return Session{q: q} }

func (s Session) Query(ctx context.Context, sql string, args []any, each func(sqlsearch.Row) error) error {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := each(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s Session) QueryInt64(ctx context.Context, sql string, args []any) (int64, error) {
	var n int64
	if err := s.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
