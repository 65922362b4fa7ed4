package memberrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlsearch"
	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
)

// Repo is a SQLite implementation of memberrepo.Repository.
// The search runs through the embedded sqlsearch.Searcher.
type Repo struct {
	db sqlite.SQLDB
	*sqlsearch.Searcher
}

var _ memberrepo.Repository = (*Repo)(nil)

// NewRepo builds a Repo. session executes the search statements; nil uses db directly.
func NewRepo(db sqlite.SQLDB, session sqlsearch.Session) *Repo {
	if session == nil {
		session = sqlite.NewSession(db)
	}
	return &Repo{db: db, Searcher: sqlsearch.NewSearcher(sqlsearch.DialectSQLite, session)}
}

func (r *Repo) Save(ctx context.Context, m domain.Member) (domain.Member, error) {
	if r.db == nil {
		return domain.Member{}, errors.New("nil sqlite db")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Member{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if m.TeamID != nil {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM team WHERE id = ?`, int64(*m.TeamID)).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Member{}, memberrepo.ErrTeamNotFound
		}
		if err != nil {
			return domain.Member{}, err
		}
	}

	if m.ID == 0 {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO member (username, age, team_id) VALUES (?, ?, ?)
		`, m.Username, m.Age, teamIDArg(m.TeamID))
		if err != nil {
			return domain.Member{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return domain.Member{}, err
		}
		m.ID = domain.MemberID(id)
	} else {
		res, err := tx.ExecContext(ctx, `
			UPDATE member SET username = ?, age = ?, team_id = ? WHERE id = ?
		`, m.Username, m.Age, teamIDArg(m.TeamID), int64(m.ID))
		if err != nil {
			return domain.Member{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return domain.Member{}, err
		}
		if n == 0 {
			return domain.Member{}, memberrepo.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

func (r *Repo) FindByID(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	if r.db == nil {
		return domain.Member{}, errors.New("nil sqlite db")
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, age, team_id FROM member WHERE id = ?
	`, int64(id))
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, memberrepo.ErrNotFound
	}
	return m, err
}

func (r *Repo) FindAll(ctx context.Context) ([]domain.Member, error) {
	return r.list(ctx, `SELECT id, username, age, team_id FROM member ORDER BY id ASC`)
}

func (r *Repo) FindByUsername(ctx context.Context, username string) ([]domain.Member, error) {
	return r.list(ctx, `
		SELECT id, username, age, team_id FROM member WHERE username = ? ORDER BY id ASC
	`, username)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	if r.db == nil {
		return nil, errors.New("nil sqlite db")
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
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
		username sql.NullString
		age      int
		teamID   sql.NullInt64
	)
	if err := row.Scan(&id, &username, &age, &teamID); err != nil {
		return domain.Member{}, err
	}
	m := domain.Member{ID: domain.MemberID(id), Age: age}
	if username.Valid {
		s := username.String
		m.Username = &s
	}
	if teamID.Valid {
		t := domain.TeamID(teamID.Int64)
		m.TeamID = &t
	}
	return m, nil
}

func teamIDArg(id *domain.TeamID) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}
