package teamrepo

import (
	"context"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// Repository provides access to persisted teams.
type Repository interface {
	// Save inserts t when t.ID is zero (assigning a new ID) and updates it otherwise.
	Save(ctx context.Context, t domain.Team) (domain.Team, error)

	FindByID(ctx context.Context, id domain.TeamID) (domain.Team, error)
	// FindAll returns teams ordered by ID ascending.
	FindAll(ctx context.Context) ([]domain.Team, error)
}
