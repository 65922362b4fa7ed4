package sqlite

import (
	"context"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlsearch"
)

// Session adapts database/sql to sqlsearch.Session.
type Session struct {
	db SQLDB
}

var _ sqlsearch.Session = Session{}

func NewSession(db SQLDB) Session { return Session{db: db} }

func (s Session) Query(ctx context.Context, sql string, args []any, each func(sqlsearch.Row) error) error {
	rows, err := s.db.QueryContext(ctx, sql, args...)
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
	if err := s.db.QueryRowContext(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
