package sqlsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

const pgJoin = `FROM "member" AS "m" LEFT JOIN "team" AS "t" ON ("m"."team_id" = "t"."id")`

func TestQuery_Select_NoPredicates(t *testing.T) {
	t.Parallel()

	stmt, err := NewQuery(DialectPostgres).Select(And(ConditionPredicates(domain.MemberSearchCondition{})...), nil, nil)
	require.NoError(t, err)

	assert.Contains(t, stmt.SQL, `SELECT "m"."id" AS "member_id", "m"."username", "m"."age", "t"."id" AS "team_id", "t"."name" AS "team_name"`)
	assert.Contains(t, stmt.SQL, pgJoin)
	assert.NotContains(t, stmt.SQL, "WHERE")
	assert.NotContains(t, stmt.SQL, "LIMIT")
	assert.True(t, strings.HasSuffix(stmt.SQL, `ORDER BY "m"."id" ASC`), stmt.SQL)
	assert.Empty(t, stmt.Args)
}

func TestQuery_Select_BindsPredicatesInCanonicalOrder(t *testing.T) {
	t.Parallel()

	cond := domain.MemberSearchCondition{
		AgeLoe:   intPtr(40),
		AgeGoe:   intPtr(35),
		TeamName: strPtr("team2"),
		Username: strPtr("member4"),
	}
	stmt, err := NewQuery(DialectPostgres).Select(And(ConditionPredicates(cond)...), nil, nil)
	require.NoError(t, err)

	fragments := []string{
		`"m"."username" = $1`,
		`"t"."name" = $2`,
		`"m"."age" >= $3`,
		`"m"."age" <= $4`,
	}
	last := -1
	for _, f := range fragments {
		i := strings.Index(stmt.SQL, f)
		require.GreaterOrEqual(t, i, 0, "missing %q in %s", f, stmt.SQL)
		assert.Greater(t, i, last, "fragment %q out of order", f)
		last = i
	}
	assert.Contains(t, stmt.SQL, " AND ")

	require.Len(t, stmt.Args, 4)
	assert.EqualValues(t, "member4", stmt.Args[0])
	assert.EqualValues(t, "team2", stmt.Args[1])
	assert.EqualValues(t, 35, stmt.Args[2])
	assert.EqualValues(t, 40, stmt.Args[3])

	// Values are bound, never inlined.
	assert.NotContains(t, stmt.SQL, "member4")
	assert.NotContains(t, stmt.SQL, "team2")
}

func TestQuery_Select_BlankStringsAreAbsent(t *testing.T) {
	t.Parallel()

	cond := domain.MemberSearchCondition{Username: strPtr(""), TeamName: strPtr("   ")}
	stmt, err := NewQuery(DialectPostgres).Select(And(ConditionPredicates(cond)...), nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, stmt.SQL, "WHERE")
}

func TestQuery_Select_Window(t *testing.T) {
	t.Parallel()

	q := NewQuery(DialectPostgres)

	first := domain.PageOf(0, 3)
	stmt, err := q.Select(nil, nil, &first)
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "LIMIT $1")
	assert.NotContains(t, stmt.SQL, "OFFSET")
	require.Len(t, stmt.Args, 1)
	assert.EqualValues(t, 3, stmt.Args[0])

	third := domain.PageOf(2, 2)
	cond := domain.MemberSearchCondition{TeamName: strPtr("team1")}
	stmt, err = q.Select(And(ConditionPredicates(cond)...), nil, &third)
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, `"t"."name" = $1`)
	assert.Contains(t, stmt.SQL, "LIMIT $2")
	assert.Contains(t, stmt.SQL, "OFFSET $3")
	require.Len(t, stmt.Args, 3)
	assert.EqualValues(t, 2, stmt.Args[1])
	assert.EqualValues(t, 4, stmt.Args[2])
}

func TestQuery_Select_Sort(t *testing.T) {
	t.Parallel()

	sort := []domain.Order{domain.Desc(domain.SortAge), domain.Asc(domain.SortUsername).WithNullsLast()}
	stmt, err := NewQuery(DialectPostgres).Select(nil, sort, nil)
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, `ORDER BY "m"."age" DESC, "m"."username" ASC NULLS LAST, "m"."id" ASC`)

	stmt, err = NewQuery(DialectPostgres).Select(nil, []domain.Order{domain.Desc(domain.SortMemberID)}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stmt.SQL, `ORDER BY "m"."id" DESC`), stmt.SQL)

	_, err = NewQuery(DialectPostgres).Select(nil, []domain.Order{{Property: "password", Direction: domain.DirectionAsc}}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuery_SelectWithTotal(t *testing.T) {
	t.Parallel()

	stmt, err := NewQuery(DialectPostgres).SelectWithTotal(nil, nil, domain.PageOf(1, 2))
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, `COUNT(*) OVER() AS "total_count"`)
	assert.Contains(t, stmt.SQL, pgJoin)
	assert.Contains(t, stmt.SQL, "LIMIT $1")
	assert.Contains(t, stmt.SQL, "OFFSET $2")
}

func TestQuery_Count_SharesJoinAndPredicates(t *testing.T) {
	t.Parallel()

	q := NewQuery(DialectPostgres)
	cond := domain.MemberSearchCondition{TeamName: strPtr("team2"), AgeGoe: intPtr(35)}
	where := And(ConditionPredicates(cond)...)

	count, err := q.Count(where)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(count.SQL, `SELECT COUNT("m"."id") `+pgJoin), count.SQL)
	assert.Contains(t, count.SQL, `"t"."name" = $1`)
	assert.Contains(t, count.SQL, `"m"."age" >= $2`)
	assert.NotContains(t, count.SQL, "COUNT(*)")
	assert.NotContains(t, count.SQL, "ORDER BY")

	page := domain.PageOf(0, 10)
	data, err := q.Select(where, nil, &page)
	require.NoError(t, err)
	assert.Equal(t, count.Args, data.Args[:len(count.Args)])
}

func TestQuery_SQLiteDialect(t *testing.T) {
	t.Parallel()

	cond := domain.MemberSearchCondition{Username: strPtr("member1")}
	stmt, err := NewQuery(DialectSQLite).Select(And(ConditionPredicates(cond)...), nil, nil)
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "LEFT JOIN `team` AS `t` ON (`m`.`team_id` = `t`.`id`)")
	assert.Contains(t, stmt.SQL, "`m`.`username` = ?")
	assert.NotContains(t, stmt.SQL, "$1")
}

func TestBuildCondition_MatchesConditionPredicates(t *testing.T) {
	t.Parallel()

	conds := []domain.MemberSearchCondition{
		{},
		{Username: strPtr("member1")},
		{TeamName: strPtr("team1")},
		{AgeGoe: intPtr(35), AgeLoe: intPtr(40), TeamName: strPtr("team2")},
		{Username: strPtr(" "), AgeLoe: intPtr(20)},
	}
	q := NewQuery(DialectPostgres)
	for _, c := range conds {
		viaAnd, err := q.Select(And(ConditionPredicates(c)...), nil, nil)
		require.NoError(t, err)
		viaBuilder, err := q.Select(BuildCondition(c).Expressions(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, viaAnd, viaBuilder)
	}
}

func TestPredicates_Absent(t *testing.T) {
	t.Parallel()

	assert.False(t, UsernameEq(nil).IsPresent())
	assert.False(t, UsernameEq(strPtr("")).IsPresent())
	assert.False(t, TeamNameEq(strPtr("\t")).IsPresent())
	assert.False(t, AgeGoe(nil).IsPresent())
	assert.False(t, AgeLoe(nil).IsPresent())
	assert.True(t, AgeGoe(intPtr(0)).IsPresent())
	assert.True(t, UsernameEq(strPtr("member1")).IsPresent())

	assert.Empty(t, And(Absent, Absent))
	assert.Len(t, And(Absent, AgeLoe(intPtr(3)), Absent), 1)
}
