package teamrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

// Repo is an in-memory implementation of teamrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	nextID domain.TeamID
	byID   map[domain.TeamID]domain.Team
}

var _ teamrepo.Repository = (*Repo)(nil)

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.TeamID]domain.Team)}
}

func (r *Repo) Save(ctx context.Context, t domain.Team) (domain.Team, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == 0 {
		r.nextID++
		t.ID = r.nextID
	} else if _, ok := r.byID[t.ID]; !ok {
		return domain.Team{}, teamrepo.ErrNotFound
	}
	r.byID[t.ID] = t
	return t, nil
}

func (r *Repo) FindByID(ctx context.Context, id domain.TeamID) (domain.Team, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return domain.Team{}, teamrepo.ErrNotFound
	}
	return t, nil
}

func (r *Repo) FindAll(ctx context.Context) ([]domain.Team, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Team, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
