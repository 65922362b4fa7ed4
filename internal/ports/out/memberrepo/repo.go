package memberrepo

import (
	"context"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// Repository provides access to persisted members and the member/team search.
//
// Result ordering expectations:
//   - FindAll/FindByUsername return members ordered by ID ascending (insertion order).
//   - Search methods order by the page's sort, falling back to member ID ascending.
type Repository interface {
	// Save inserts m when m.ID is zero (assigning a new, monotone ID) and updates it otherwise.
	Save(ctx context.Context, m domain.Member) (domain.Member, error)

	FindByID(ctx context.Context, id domain.MemberID) (domain.Member, error)
	FindAll(ctx context.Context) ([]domain.Member, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Member, error)

	Searcher
}

// Searcher is the dynamic member/team search.
//
// A nil condition, a non-positive page size or a negative page number fail with
// domain.ErrInvalidInput before any query is issued.
type Searcher interface {
	Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]domain.MemberTeamRow, error)
	// SearchByBuilder accumulates the same predicates one field at a time and returns
	// exactly what Search returns.
	SearchByBuilder(ctx context.Context, cond *domain.MemberSearchCondition) ([]domain.MemberTeamRow, error)
	// SearchSimple derives content and total from one combined round-trip.
	SearchSimple(ctx context.Context, cond *domain.MemberSearchCondition, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error)
	// SearchComplex issues a separate COUNT query sharing the data query's predicates and join.
	SearchComplex(ctx context.Context, cond *domain.MemberSearchCondition, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error)
}
