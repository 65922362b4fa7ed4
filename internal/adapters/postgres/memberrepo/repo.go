package memberrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Overland-East-Bay/member-search-api/internal/adapters/postgres"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlsearch"
	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
)

// Repo is a Postgres implementation of memberrepo.Repository.
// The search runs through the embedded sqlsearch.Searcher.
type Repo struct {
	pool *pgxpool.Pool
	*sqlsearch.Searcher
}

var _ memberrepo.Repository = (*Repo)(nil)

// NewRepo builds a Repo. session executes the search statements; nil uses the pool directly.
func NewRepo(pool *pgxpool.Pool, session sqlsearch.Session) *Repo {
	if session == nil {
		session = postgres.NewSession(pool)
	}
	return &Repo{pool: pool, Searcher: sqlsearch.NewSearcher(sqlsearch.DialectPostgres, session)}
}

func (r *Repo) Save(ctx context.Context, m domain.Member) (domain.Member, error) {
	if r.pool == nil {
		return domain.Member{}, errors.New("nil postgres pool")
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if m.ID == 0 {
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO member (username, age, team_id)
				VALUES ($1, $2, $3)
				RETURNING id
			`, m.Username, m.Age, teamIDArg(m.TeamID)).Scan(&id)
			if err != nil {
				return mapWriteError(err)
			}
			m.ID = domain.MemberID(id)
			return nil
		}

		ct, err := tx.Exec(ctx, `
			UPDATE member
			SET username = $2,
			    age = $3,
			    team_id = $4
			WHERE id = $1
		`, int64(m.ID), m.Username, m.Age, teamIDArg(m.TeamID))
		if err != nil {
			return mapWriteError(err)
		}
		if ct.RowsAffected() == 0 {
			return memberrepo.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

func (r *Repo) FindByID(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	if r.pool == nil {
		return domain.Member{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, age, team_id
		FROM member
		WHERE id = $1
	`, int64(id))
	m, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Member{}, memberrepo.ErrNotFound
	}
	return m, err
}

func (r *Repo) FindAll(ctx context.Context) ([]domain.Member, error) {
	return r.list(ctx, `
		SELECT id, username, age, team_id
		FROM member
		ORDER BY id ASC
	`)
}

func (r *Repo) FindByUsername(ctx context.Context, username string) ([]domain.Member, error) {
	return r.list(ctx, `
		SELECT id, username, age, team_id
		FROM member
		WHERE username = $1
		ORDER BY id ASC
	`, username)
}

func (r *Repo) list(ctx context.Context, sql string, args ...any) ([]domain.Member, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMember(row interface{ Scan(dest ...any) error }) (domain.Member, error) {
	var (
		id       int64
		username *string
		age      int32
		teamID   *int64
	)
	if err := row.Scan(&id, &username, &age, &teamID); err != nil {
		return domain.Member{}, err
	}
	m := domain.Member{ID: domain.MemberID(id), Username: username, Age: int(age)}
	if teamID != nil {
		t := domain.TeamID(*teamID)
		m.TeamID = &t
	}
	return m, nil
}

func mapWriteError(err error) error {
	if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.ForeignKeyViolationCode {
		if pe.ConstraintName == "member_team_fk" {
			return memberrepo.ErrTeamNotFound
		}
	}
	return err
}

func teamIDArg(id *domain.TeamID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
