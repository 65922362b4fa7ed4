package teamrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

// Repo is a Postgres implementation of teamrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

var _ teamrepo.Repository = (*Repo)(nil)

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Save(ctx context.Context, t domain.Team) (domain.Team, error) {
	if r.pool == nil {
		return domain.Team{}, errors.New("nil postgres pool")
	}
	if t.ID == 0 {
		var id int64
		if err := r.pool.QueryRow(ctx, `
			INSERT INTO team (name) VALUES ($1) RETURNING id
		`, t.Name).Scan(&id); err != nil {
			return domain.Team{}, err
		}
		t.ID = domain.TeamID(id)
		return t, nil
	}
	ct, err := r.pool.Exec(ctx, `UPDATE team SET name = $2 WHERE id = $1`, int64(t.ID), t.Name)
	if err != nil {
		return domain.Team{}, err
	}
	if ct.RowsAffected() == 0 {
		return domain.Team{}, teamrepo.ErrNotFound
	}
	return t, nil
}

func (r *Repo) FindByID(ctx context.Context, id domain.TeamID) (domain.Team, error) {
	if r.pool == nil {
		return domain.Team{}, errors.New("nil postgres pool")
	}
	var raw int64
	var t domain.Team
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM team WHERE id = $1`, int64(id)).Scan(&raw, &t.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Team{}, teamrepo.ErrNotFound
	}
	if err != nil {
		return domain.Team{}, err
	}
	t.ID = domain.TeamID(raw)
	return t, nil
}

func (r *Repo) FindAll(ctx context.Context) ([]domain.Team, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM team ORDER BY id ASC`)
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
