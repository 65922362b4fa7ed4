package memberrepo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// Team references are resolved through teams, which plays the role of the joined table.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	nextID domain.MemberID
	byID   map[domain.MemberID]domain.Member

	teams teamrepo.Repository
}

var _ memberrepo.Repository = (*Repo)(nil)

func NewRepo(teams teamrepo.Repository) *Repo {
	return &Repo{
		byID:  make(map[domain.MemberID]domain.Member),
		teams: teams,
	}
}

func (r *Repo) Save(ctx context.Context, m domain.Member) (domain.Member, error) {
	if m.TeamID != nil {
		if _, err := r.teams.FindByID(ctx, *m.TeamID); err != nil {
			if errors.Is(err, teamrepo.ErrNotFound) {
				return domain.Member{}, memberrepo.ErrTeamNotFound
			}
			return domain.Member{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == 0 {
		r.nextID++
		m.ID = r.nextID
	} else if _, ok := r.byID[m.ID]; !ok {
		return domain.Member{}, memberrepo.ErrNotFound
	}
	r.byID[m.ID] = cloneMember(m)
	return cloneMember(m), nil
}

func (r *Repo) FindByID(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.Member{}, memberrepo.ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *Repo) FindAll(ctx context.Context) ([]domain.Member, error) {
	_ = ctx
	return r.snapshot(func(domain.Member) bool { return true }), nil
}

func (r *Repo) FindByUsername(ctx context.Context, username string) ([]domain.Member, error) {
	_ = ctx
	return r.snapshot(func(m domain.Member) bool {
		return m.Username != nil && *m.Username == username
	}), nil
}

// snapshot returns the members accepted by keep, ordered by ID.
func (r *Repo) snapshot(keep func(domain.Member) bool) []domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Member, 0, len(r.byID))
	for _, m := range r.byID {
		if keep(m) {
			out = append(out, cloneMember(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneMember(m domain.Member) domain.Member {
	out := m
	if m.Username != nil {
		u := *m.Username
		out.Username = &u
	}
	if m.TeamID != nil {
		t := *m.TeamID
		out.TeamID = &t
	}
	return out
}
