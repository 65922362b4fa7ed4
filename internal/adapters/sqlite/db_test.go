package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlsearch"
)

func TestOpen_CreatesSchemaAndEnforcesForeignKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"member", "team", "idempotency_keys"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	_, err = db.ExecContext(ctx, `INSERT INTO member (username, age, team_id) VALUES ('x', 1, 999)`)
	require.Error(t, err)

	require.NoError(t, InitDB(ctx, db), "InitDB is re-runnable")
}

func TestSession_QueryAndQueryInt64(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO team (name) VALUES ('teamA'), ('teamB')`)
	require.NoError(t, err)

	s := NewSession(db)
	var names []string
	err = s.Query(ctx, `SELECT name FROM team WHERE id >= ? ORDER BY id`, []any{1}, func(r sqlsearch.Row) error {
		var n string
		if err := r.Scan(&n); err != nil {
			return err
		}
		names = append(names, n)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"teamA", "teamB"}, names)

	n, err := s.QueryInt64(ctx, `SELECT COUNT(*) FROM team`, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}
