package sqlsearch

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// Dialect selects identifier quoting and placeholder style.
type Dialect string

const (
	// DialectPostgres quotes with "..." and binds $1, $2, ...
	DialectPostgres Dialect = "postgres"
	// DialectSQLite quotes with `...` and binds ?.
	DialectSQLite Dialect = "sqlite3"
)

// totalColumn is the window-count column added in simple mode.
const totalColumn = "total_count"

// Statement is a rendered, parametric SQL statement.
type Statement struct {
	SQL  string
	Args []any
}

// Query assembles the fixed member LEFT JOIN team search statements.
//
//	SELECT m.id AS member_id, m.username, m.age, t.id AS team_id, t.name AS team_name
//	  FROM member AS m LEFT JOIN team AS t ON (m.team_id = t.id)
//	 WHERE <predicates> ORDER BY <sort>, m.id [LIMIT ? OFFSET ?]
type Query struct {
	dialect goqu.DialectWrapper
}

func NewQuery(d Dialect) Query {
	return Query{dialect: goqu.Dialect(string(d))}
}

var sortColumns = map[domain.SortProperty]exp.IdentifierExpression{
	domain.SortMemberID: Member.ID,
	domain.SortUsername: Member.Username,
	domain.SortAge:      Member.Age,
	domain.SortTeamID:   Team.ID,
	domain.SortTeamName: Team.Name,
}

func projection() []any {
	return []any{
		Member.ID.As("member_id"),
		Member.Username,
		Member.Age,
		Team.ID.As("team_id"),
		Team.Name.As("team_name"),
	}
}

func (q Query) from(where []exp.Expression) *goqu.SelectDataset {
	ds := q.dialect.
		From(Member.Table).
		LeftJoin(Team.Table, goqu.On(Member.TeamID.Eq(Team.ID))).
		Prepared(true)
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds
}

// Select renders the data query. A nil window renders the unpaginated form.
func (q Query) Select(where []exp.Expression, sort []domain.Order, window *domain.PageRequest) (Statement, error) {
	ds := q.from(where).Select(projection()...)
	return q.finish(ds, sort, window)
}

// SelectWithTotal renders the data query with an extra COUNT(*) OVER() column holding the
// number of matching rows before LIMIT/OFFSET are applied.
func (q Query) SelectWithTotal(where []exp.Expression, sort []domain.Order, window domain.PageRequest) (Statement, error) {
	cols := append(projection(), goqu.L("COUNT(*) OVER()").As(totalColumn))
	ds := q.from(where).Select(cols...)
	return q.finish(ds, sort, &window)
}

// Count renders SELECT COUNT(m.id) over the same join and predicates as the data query.
func (q Query) Count(where []exp.Expression) (Statement, error) {
	return render(q.from(where).Select(goqu.COUNT(Member.ID)))
}

func (q Query) finish(ds *goqu.SelectDataset, sort []domain.Order, window *domain.PageRequest) (Statement, error) {
	order, err := orderBy(sort)
	if err != nil {
		return Statement{}, err
	}
	ds = ds.Order(order...)
	if window != nil {
		ds = ds.Limit(uint(window.Size)).Offset(uint(window.Offset()))
	}
	return render(ds)
}

// orderBy maps sort terms to columns and appends m.id ASC as the final tie-breaker.
func orderBy(sort []domain.Order) ([]exp.OrderedExpression, error) {
	out := make([]exp.OrderedExpression, 0, len(sort)+1)
	for _, o := range sort {
		col, ok := sortColumns[o.Property]
		if !ok {
			return nil, fmt.Errorf("%w: unknown sort property %q", domain.ErrInvalidInput, o.Property)
		}
		oe := col.Asc()
		if o.Direction == domain.DirectionDesc {
			oe = col.Desc()
		}
		if o.NullsLast {
			oe = oe.NullsLast()
		}
		out = append(out, oe)
	}
	if len(sort) == 0 || sort[len(sort)-1].Property != domain.SortMemberID {
		out = append(out, Member.ID.Asc())
	}
	return out, nil
}

func render(ds *goqu.SelectDataset) (Statement, error) {
	sql, args, err := ds.ToSQL()
	if err != nil {
		return Statement{}, fmt.Errorf("render search query: %w", err)
	}
	return Statement{SQL: sql, Args: args}, nil
}
