package sqlsearch

import (
	"context"
	"fmt"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// fetchRows runs a data statement and projects every row.
func fetchRows(ctx context.Context, s Session, stmt Statement) ([]domain.MemberTeamRow, error) {
	out := make([]domain.MemberTeamRow, 0)
	err := s.Query(ctx, stmt.SQL, stmt.Args, func(r Row) error {
		row, err := scanMemberTeamRow(r)
		if err != nil {
			return err
		}
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fetchRowsWithTotal runs a SelectWithTotal statement. found is false when the window was
// empty, in which case total carries no information.
func fetchRowsWithTotal(ctx context.Context, s Session, stmt Statement) (rows []domain.MemberTeamRow, total int64, found bool, err error) {
	rows = make([]domain.MemberTeamRow, 0)
	err = s.Query(ctx, stmt.SQL, stmt.Args, func(r Row) error {
		var rowTotal int64
		row, err := scanMemberTeamRow(r, &rowTotal)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		total, found = rowTotal, true
		return nil
	})
	if err != nil {
		return nil, 0, false, err
	}
	return rows, total, found, nil
}

// pageSimple issues one windowed round-trip carrying the total in every row.
//
// A window past the end returns no rows and therefore no total; only then (and only when
// offset > 0) the count statement is issued as a fallback.
func pageSimple(ctx context.Context, s Session, data Statement, count func() (Statement, error), page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	rows, total, found, err := fetchRowsWithTotal(ctx, s, data)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	if !found && page.Offset() > 0 {
		stmt, err := count()
		if err != nil {
			return domain.Page[domain.MemberTeamRow]{}, err
		}
		if total, err = s.QueryInt64(ctx, stmt.SQL, stmt.Args); err != nil {
			return domain.Page[domain.MemberTeamRow]{}, err
		}
	}
	return domain.NewPage(rows, page, total), nil
}

// pageSplit issues the data statement and then the count statement.
func pageSplit(ctx context.Context, s Session, data, count Statement, page domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	rows, err := fetchRows(ctx, s, data)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	total, err := s.QueryInt64(ctx, count.SQL, count.Args)
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	if err := checkConsistency(len(rows), total, page); err != nil {
		return domain.Page[domain.MemberTeamRow]{}, err
	}
	return domain.NewPage(rows, page, total), nil
}

// checkConsistency enforces len(content) <= total - offset for a non-empty window.
func checkConsistency(n int, total int64, page domain.PageRequest) error {
	if n == 0 {
		return nil
	}
	if int64(n) > total-page.Offset() {
		return fmt.Errorf("%w: %d rows at offset %d, total %d", domain.ErrInconsistentPage, n, page.Offset(), total)
	}
	return nil
}
