package sqlsearch

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// Searcher is the member/team search facade over a Session.
// It holds no mutable state and is safe for concurrent use.
type Searcher struct {
	query   Query
	session Session
}

func NewSearcher(d Dialect, session Session) *Searcher {
	return &Searcher{query: NewQuery(d), session: session}
}

// Search returns every matching row, ordered by member id.
func (s *Searcher) Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]domain.MemberTeamRow, error) {
	if cond == nil {
		return nil, errNilCondition
	}
	return s.list(ctx, And(ConditionPredicates(*cond)...))
}

// SearchByBuilder is Search with the predicates accumulated through a Builder.
// Both render the same statement.
func (s *Searcher) SearchByBuilder(ctx context.Context, cond *domain.MemberSearchCondition) ([]domain.MemberTeamRow, error) {
	if cond == nil {
		return nil, errNilCondition
	}
	return s.list(ctx, BuildCondition(*cond).Expressions())
}

// SearchSimple returns one page and the total from a single windowed query.
func (s *Searcher) SearchSimple(ctx context.Context, cond *domain.MemberSearchCondition, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	where, err := validate(cond, page)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	data, err := s.query.SelectWithTotal(where, page.Sort, page)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	count := func() (Statement, error) { return s.query.Count(where) }
	return pageSimple(ctx, s.session, data, count, page)
}

// SearchComplex returns one page from a data query and a separate COUNT query.
func (s *Searcher) SearchComplex(ctx context.Context, cond *domain.MemberSearchCondition, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	where, err := validate(cond, page)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	data, err := s.query.Select(where, page.Sort, &page)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	count, err := s.query.Count(where)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	return pageSplit(ctx, s.session, data, count, page)
}

func (s *Searcher) list(ctx context.Context, where []exp.Expression) ([]domain.MemberTeamRow, error) {
	stmt, err := s.query.Select(where, nil, nil)
	if err != nil {
		return nil, err
	}
	return fetchRows(ctx, s.session, stmt)
}

var errNilCondition = fmt.Errorf("%w: search condition is required", domain.ErrInvalidInput)

func validate(cond *domain.MemberSearchCondition, page domain.PageRequest) ([]exp.Expression, error) {
	if cond == nil {
		return nil, errNilCondition
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return And(ConditionPredicates(*cond)...), nil
}
