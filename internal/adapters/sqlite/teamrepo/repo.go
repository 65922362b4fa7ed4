package teamrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite"
	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

// Repo is a SQLite implementation of teamrepo.Repository.
type Repo struct {
	db sqlite.SQLDB
}

var _ teamrepo.Repository = (*Repo)(nil)

func NewRepo(db sqlite.SQLDB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Save(ctx context.Context, t domain.Team) (domain.Team, error) {
	if r.db == nil {
		return domain.Team{}, errors.New("nil sqlite db")
	}
	if t.ID == 0 {
		res, err := r.db.ExecContext(ctx, `INSERT INTO team (name) VALUES (?)`, t.Name)
		if err != nil {
			return domain.Team{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return domain.Team{}, err
		}
		t.ID = domain.TeamID(id)
		return t, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE team SET name = ? WHERE id = ?`, t.Name, int64(t.ID))
	if err != nil {
		return domain.Team{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Team{}, err
	}
	if n == 0 {
		return domain.Team{}, teamrepo.ErrNotFound
	}
	return t, nil
}

func (r *Repo) FindByID(ctx context.Context, id domain.TeamID) (domain.Team, error) {
	if r.db == nil {
		return domain.Team{}, errors.New("nil sqlite db")
	}
	var t domain.Team
	var raw int64
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM team WHERE id = ?`, int64(id)).Scan(&raw, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Team{}, teamrepo.ErrNotFound
	}
	if err != nil {
		return domain.Team{}, err
	}
	t.ID = domain.TeamID(raw)
	return t, nil
}

func (r *Repo) FindAll(ctx context.Context) ([]domain.Team, error) {
	if r.db == nil {
		return nil, errors.New("nil sqlite db")
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM team ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Team, 0)
	for rows.Next() {
		var raw int64
		var t domain.Team
		if err := rows.Scan(&raw, &t.Name); err != nil {
			return nil, err
		}
		t.ID = domain.TeamID(raw)
		out = append(out, t)
	}
	return out, rows.Err()
}
