package contracttest

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	memberrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
	teamrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

// Fixture is the seeded store a search contract test runs against.
type Fixture struct {
	Members memberrepoport.Repository
	Teams   map[string]domain.Team
	IDs     map[string]domain.MemberID
}

// Seed stores team1 and team2 and four members aged 10..40, the first two in team1
// and the last two in team2.
func Seed(t *testing.T, members memberrepoport.Repository, teams teamrepoport.Repository) Fixture {
	t.Helper()
	ctx := context.Background()

	f := Fixture{Members: members, Teams: map[string]domain.Team{}, IDs: map[string]domain.MemberID{}}
	for _, name := range []string{"team1", "team2"} {
		team, err := teams.Save(ctx, domain.Team{Name: name})
		require.NoError(t, err, "Save(%s)", name)
		f.Teams[name] = team
	}
	seed := []struct {
		username string
		age      int
		team     string
	}{
		{"member1", 10, "team1"},
		{"member2", 20, "team1"},
		{"member3", 30, "team2"},
		{"member4", 40, "team2"},
	}
	for _, s := range seed {
		team := f.Teams[s.team]
		m, err := members.Save(ctx, domain.NewMember(s.username, s.age, &team))
		require.NoError(t, err, "Save(%s)", s.username)
		f.IDs[s.username] = m.ID
	}
	return f
}

// AddTeamless stores a member without a team.
func (f Fixture) AddTeamless(t *testing.T, username string, age int) {
	t.Helper()
	m, err := f.Members.Save(context.Background(), domain.NewMember(username, age, nil))
	require.NoError(t, err, "Save(%s)", username)
	f.IDs[username] = m.ID
}

func usernames(rows []domain.MemberTeamRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Username == nil {
			out = append(out, "")
			continue
		}
		out = append(out, *r.Username)
	}
	return out
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

var allMembers = []string{"member1", "member2", "member3", "member4"}

// RunSearch checks the search contract: filters, projection, both pagination modes and
// their agreement, ordering and input validation.
func RunSearch(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()

	setup := func(t *testing.T) Fixture {
		t.Helper()
		members, teams, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		return Seed(t, members, teams)
	}
	ctx := context.Background()

	t.Run("age range and team name", func(t *testing.T) {
		f := setup(t)
		rows, err := f.Members.Search(ctx, &domain.MemberSearchCondition{AgeGoe: num(35), AgeLoe: num(40), TeamName: str("team2")})
		require.NoError(t, err)
		assert.Equal(t, []string{"member4"}, usernames(rows))
	})

	t.Run("team name only", func(t *testing.T) {
		f := setup(t)
		rows, err := f.Members.Search(ctx, &domain.MemberSearchCondition{TeamName: str("team1")})
		require.NoError(t, err)
		assert.Equal(t, []string{"member1", "member2"}, usernames(rows))
	})

	t.Run("simple first page", func(t *testing.T) {
		f := setup(t)
		page, err := f.Members.SearchSimple(ctx, &domain.MemberSearchCondition{}, domain.PageOf(0, 3))
		require.NoError(t, err)
		assert.Equal(t, []string{"member1", "member2", "member3"}, usernames(page.Content))
		assert.EqualValues(t, 4, page.Total)
		assert.Equal(t, 3, page.Size())
		assert.Equal(t, 2, page.TotalPages())
	})

	t.Run("complex page larger than result", func(t *testing.T) {
		f := setup(t)
		page, err := f.Members.SearchComplex(ctx, &domain.MemberSearchCondition{}, domain.PageOf(0, 100))
		require.NoError(t, err)
		assert.Equal(t, allMembers, usernames(page.Content))
		assert.EqualValues(t, 4, page.Total)
	})

	t.Run("simple last page", func(t *testing.T) {
		f := setup(t)
		page, err := f.Members.SearchSimple(ctx, &domain.MemberSearchCondition{}, domain.PageOf(1, 2))
		require.NoError(t, err)
		assert.Equal(t, []string{"member3", "member4"}, usernames(page.Content))
		assert.EqualValues(t, 4, page.Total)
		assert.True(t, page.IsLast())
	})

	t.Run("blank username is no filter", func(t *testing.T) {
		f := setup(t)
		for _, blank := range []string{"", "   "} {
			rows, err := f.Members.Search(ctx, &domain.MemberSearchCondition{Username: str(blank)})
			require.NoError(t, err)
			assert.Equal(t, allMembers, usernames(rows), "username=%q", blank)
		}
	})

	t.Run("username equality", func(t *testing.T) {
		f := setup(t)
		rows, err := f.Members.Search(ctx, &domain.MemberSearchCondition{Username: str("member3")})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, f.IDs["member3"], row.MemberID)
		assert.Equal(t, 30, row.Age)
		require.NotNil(t, row.TeamID)
		assert.Equal(t, f.Teams["team2"].ID, *row.TeamID)
		require.NotNil(t, row.TeamName)
		assert.Equal(t, "team2", *row.TeamName)
	})

	t.Run("empty condition returns teamless members with null team fields", func(t *testing.T) {
		f := setup(t)
		f.AddTeamless(t, "member5", 50)
		rows, err := f.Members.Search(ctx, &domain.MemberSearchCondition{})
		require.NoError(t, err)
		assert.Equal(t, append(append([]string{}, allMembers...), "member5"), usernames(rows))
		last := rows[len(rows)-1]
		assert.Nil(t, last.TeamID)
		assert.Nil(t, last.TeamName)

		only, err := f.Members.Search(ctx, &domain.MemberSearchCondition{Username: str("member5")})
		require.NoError(t, err)
		assert.Equal(t, []string{"member5"}, usernames(only))
	})

	t.Run("team filter excludes teamless members", func(t *testing.T) {
		f := setup(t)
		f.AddTeamless(t, "member5", 35)
		rows, err := f.Members.Search(ctx, &domain.MemberSearchCondition{TeamName: str("team2")})
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		for _, r := range rows {
			require.NotNil(t, r.TeamName)
			assert.Equal(t, "team2", *r.TeamName)
		}
		assert.Equal(t, []string{"member3", "member4"}, usernames(rows))
	})

	t.Run("age bounds are inclusive", func(t *testing.T) {
		f := setup(t)
		rows, err := f.Members.Search(ctx, &domain.MemberSearchCondition{AgeGoe: num(20), AgeLoe: num(30)})
		require.NoError(t, err)
		assert.Equal(t, []string{"member2", "member3"}, usernames(rows))
		for _, r := range rows {
			assert.GreaterOrEqual(t, r.Age, 20)
			assert.LessOrEqual(t, r.Age, 30)
		}
	})

	t.Run("inverted age range is empty", func(t *testing.T) {
		f := setup(t)
		cond := &domain.MemberSearchCondition{AgeGoe: num(40), AgeLoe: num(10)}
		rows, err := f.Members.Search(ctx, cond)
		require.NoError(t, err)
		assert.Empty(t, rows)
		for mode, run := range pageModes(f.Members) {
			page, err := run(ctx, cond, domain.PageOf(0, 10))
			require.NoError(t, err, mode)
			assert.Empty(t, page.Content, mode)
			assert.NotNil(t, page.Content, mode)
			assert.EqualValues(t, 0, page.Total, mode)
		}
	})

	t.Run("offset past the end keeps the total", func(t *testing.T) {
		f := setup(t)
		for mode, run := range pageModes(f.Members) {
			page, err := run(ctx, &domain.MemberSearchCondition{}, domain.PageOf(5, 2))
			require.NoError(t, err, mode)
			assert.Empty(t, page.Content, mode)
			assert.EqualValues(t, 4, page.Total, mode)
		}
	})

	t.Run("simple and complex agree", func(t *testing.T) {
		f := setup(t)
		f.AddTeamless(t, "member5", 25)
		for _, cond := range sampleConditions() {
			for size := 1; size <= 3; size++ {
				for n := 0; n <= 6/size; n++ {
					p := domain.PageOf(n, size)
					simple, err := f.Members.SearchSimple(ctx, &cond, p)
					require.NoError(t, err)
					complexPage, err := f.Members.SearchComplex(ctx, &cond, p)
					require.NoError(t, err)
					assert.Equal(t, simple.Content, complexPage.Content, "cond=%+v page=%+v", cond, p)
					assert.Equal(t, simple.Total, complexPage.Total, "cond=%+v page=%+v", cond, p)
				}
			}
		}
	})

	t.Run("pages concatenate to the full search", func(t *testing.T) {
		f := setup(t)
		f.AddTeamless(t, "member5", 25)
		for _, cond := range sampleConditions() {
			all, err := f.Members.Search(ctx, &cond)
			require.NoError(t, err)
			for size := 1; size <= 5; size++ {
				var joined []domain.MemberTeamRow
				for n := 0; ; n++ {
					page, err := f.Members.SearchSimple(ctx, &cond, domain.PageOf(n, size))
					require.NoError(t, err)
					if len(page.Content) == 0 {
						break
					}
					joined = append(joined, page.Content...)
				}
				assert.Equal(t, usernames(all), usernames(joined), "cond=%+v size=%d", cond, size)
			}
		}
	})

	t.Run("builder search matches search", func(t *testing.T) {
		f := setup(t)
		f.AddTeamless(t, "member5", 25)
		for _, cond := range append(sampleConditions(), domain.MemberSearchCondition{Username: str(" "), TeamName: str("")}) {
			want, err := f.Members.Search(ctx, &cond)
			require.NoError(t, err)
			got, err := f.Members.SearchByBuilder(ctx, &cond)
			require.NoError(t, err)
			assert.Equal(t, want, got, "cond=%+v", cond)
		}
	})

	t.Run("total equals full search length", func(t *testing.T) {
		f := setup(t)
		f.AddTeamless(t, "member5", 25)
		for _, cond := range sampleConditions() {
			all, err := f.Members.Search(ctx, &cond)
			require.NoError(t, err)
			page, err := f.Members.SearchSimple(ctx, &cond, domain.PageOf(0, 2))
			require.NoError(t, err)
			assert.EqualValues(t, len(all), page.Total, "cond=%+v", cond)
		}
	})

	t.Run("sorted page", func(t *testing.T) {
		f := setup(t)
		for mode, run := range pageModes(f.Members) {
			page, err := run(ctx, &domain.MemberSearchCondition{}, domain.PageOf(0, 3, domain.Desc(domain.SortAge)))
			require.NoError(t, err, mode)
			assert.Equal(t, []string{"member4", "member3", "member2"}, usernames(page.Content), mode)
			assert.EqualValues(t, 4, page.Total, mode)

			page, err = run(ctx, &domain.MemberSearchCondition{}, domain.PageOf(0, 4,
				domain.Asc(domain.SortTeamName), domain.Desc(domain.SortUsername)))
			require.NoError(t, err, mode)
			assert.Equal(t, []string{"member2", "member1", "member4", "member3"}, usernames(page.Content), mode)
		}
	})

	t.Run("invalid input fails before querying", func(t *testing.T) {
		f := setup(t)
		_, err := f.Members.Search(ctx, nil)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "Search(nil) err=%v", err)
		_, err = f.Members.SearchByBuilder(ctx, nil)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "SearchByBuilder(nil) err=%v", err)

		bad := []domain.PageRequest{
			domain.PageOf(0, 0),
			domain.PageOf(-1, 10),
			domain.PageOf(math.MaxInt/2+1, 2),
			domain.PageOf(0, 10, domain.Order{Property: "password", Direction: domain.DirectionAsc}),
		}
		for mode, run := range pageModes(f.Members) {
			_, err := run(ctx, nil, domain.PageOf(0, 10))
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%s(nil) err=%v", mode, err)
			for _, p := range bad {
				_, err := run(ctx, &domain.MemberSearchCondition{}, p)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%s(%+v) err=%v", mode, p, err)
			}
		}
	})
}

type pageFunc func(context.Context, *domain.MemberSearchCondition, domain.PageRequest) (domain.Page[domain.MemberTeamRow], error)

func pageModes(s memberrepoport.Searcher) map[string]pageFunc {
	return map[string]pageFunc{
		"SearchSimple":  s.SearchSimple,
		"SearchComplex": s.SearchComplex,
	}
}

func sampleConditions() []domain.MemberSearchCondition {
	return []domain.MemberSearchCondition{
		{},
		{TeamName: str("team1")},
		{TeamName: str("team2"), AgeGoe: num(35)},
		{AgeGoe: num(15), AgeLoe: num(35)},
		{Username: str("member5")},
		{Username: str("nobody")},
		{AgeGoe: num(100)},
	}
}
