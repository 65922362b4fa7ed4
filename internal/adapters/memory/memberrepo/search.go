package memberrepo

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

var errNilCondition = fmt.Errorf("%w: search condition is required", domain.ErrInvalidInput)

// Search returns every member matching cond, left-joined with its team, ordered by member id.
func (r *Repo) Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]domain.MemberTeamRow, error) {
	if cond == nil {
		return nil, errNilCondition
	}
	return r.matching(ctx, conditionFilter(*cond), nil)
}

// SearchByBuilder is Search with the filters accumulated one field at a time.
func (r *Repo) SearchByBuilder(ctx context.Context, cond *domain.MemberSearchCondition) ([]domain.MemberTeamRow, error) {
	if cond == nil {
		return nil, errNilCondition
	}
	return r.matching(ctx, buildFilter(*cond), nil)
}

// SearchSimple and SearchComplex share one snapshot, so the two modes always agree here.
func (r *Repo) SearchSimple(ctx context.Context, cond *domain.MemberSearchCondition, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	return r.searchPage(ctx, cond, page)
}

func (r *Repo) SearchComplex(ctx context.Context, cond *domain.MemberSearchCondition, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	return r.searchPage(ctx, cond, page)
}

func (r *Repo) searchPage(ctx context.Context, cond *domain.MemberSearchCondition, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	if cond == nil {
		return domain.Page[domain.MemberTeamRow]{}, errNilCondition
	}
	if err := page.Validate(); err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	rows, err := r.matching(ctx, conditionFilter(*cond), page.Sort)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	total := int64(len(rows))
	start := min(page.Offset(), total)
	end := min(start+int64(page.Size), total)
	return domain.NewPage(rows[start:end], page, total), nil
}

type rowFilter func(domain.MemberTeamRow) bool

func (r *Repo) matching(ctx context.Context, keep rowFilter, orders []domain.Order) ([]domain.MemberTeamRow, error) {
	teams, err := r.teams.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[domain.TeamID]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	out := make([]domain.MemberTeamRow, 0)
	for _, m := range r.snapshot(func(domain.Member) bool { return true }) {
		row := domain.MemberTeamRow{MemberID: m.ID, Username: m.Username, Age: m.Age}
		if m.TeamID != nil {
			if name, ok := names[*m.TeamID]; ok {
				row.TeamID = m.TeamID
				row.TeamName = &name
			}
		}
		if keep(row) {
			out = append(out, row)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.MemberTeamRow) int { return compareRows(a, b, orders) })
	return out, nil
}

func conditionFilter(cond domain.MemberSearchCondition) rowFilter {
	return func(row domain.MemberTeamRow) bool { return matches(cond, row) }
}

func buildFilter(cond domain.MemberSearchCondition) rowFilter {
	var filters []rowFilter
	if domain.HasText(cond.Username) {
		username := *cond.Username
		filters = append(filters, func(row domain.MemberTeamRow) bool {
			return row.Username != nil && *row.Username == username
		})
	}
	if domain.HasText(cond.TeamName) {
		teamName := *cond.TeamName
		filters = append(filters, func(row domain.MemberTeamRow) bool {
			return row.TeamName != nil && *row.TeamName == teamName
		})
	}
	if cond.AgeGoe != nil {
		goe := *cond.AgeGoe
		filters = append(filters, func(row domain.MemberTeamRow) bool { return row.Age >= goe })
	}
	if cond.AgeLoe != nil {
		loe := *cond.AgeLoe
		filters = append(filters, func(row domain.MemberTeamRow) bool { return row.Age <= loe })
	}
	return func(row domain.MemberTeamRow) bool {
		for _, f := range filters {
			if !f(row) {
				return false
			}
		}
		return true
	}
}

func matches(cond domain.MemberSearchCondition, row domain.MemberTeamRow) bool {
	if domain.HasText(cond.Username) && (row.Username == nil || *row.Username != *cond.Username) {
		return false
	}
	if domain.HasText(cond.TeamName) && (row.TeamName == nil || *row.TeamName != *cond.TeamName) {
		return false
	}
	if cond.AgeGoe != nil && row.Age < *cond.AgeGoe {
		return false
	}
	if cond.AgeLoe != nil && row.Age > *cond.AgeLoe {
		return false
	}
	return true
}

// compareRows orders by the given terms, then by member id ascending.
// NULLs compare greater than any value unless the term asks for nulls last,
// which pins them to the end in either direction.
func compareRows(a, b domain.MemberTeamRow, orders []domain.Order) int {
	for _, o := range orders {
		c := compareProperty(a, b, o)
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(a.MemberID, b.MemberID)
}

func compareProperty(a, b domain.MemberTeamRow, o domain.Order) int {
	var c int
	aNull, bNull := false, false
	switch o.Property {
	case domain.SortMemberID:
		c = cmp.Compare(a.MemberID, b.MemberID)
	case domain.SortAge:
		c = cmp.Compare(a.Age, b.Age)
	case domain.SortUsername:
		aNull, bNull = a.Username == nil, b.Username == nil
		if !aNull && !bNull {
			c = cmp.Compare(*a.Username, *b.Username)
		}
	case domain.SortTeamName:
		aNull, bNull = a.TeamName == nil, b.TeamName == nil
		if !aNull && !bNull {
			c = cmp.Compare(*a.TeamName, *b.TeamName)
		}
	case domain.SortTeamID:
		aNull, bNull = a.TeamID == nil, b.TeamID == nil
		if !aNull && !bNull {
			c = cmp.Compare(*a.TeamID, *b.TeamID)
		}
	}

	if aNull || bNull {
		switch {
		case aNull && bNull:
			return 0
		case o.NullsLast:
			if aNull {
				return 1
			}
			return -1
		default:
			c = 1
			if bNull {
				c = -1
			}
		}
	}
	if o.Direction == domain.DirectionDesc {
		return -c
	}
	return c
}
