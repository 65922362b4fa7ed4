package members

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memmemberrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/memory/memberrepo"
	memteamrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/memory/teamrepo"
	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
)

func newService() *Service {
	teams := memteamrepo.NewRepo()
	return NewService(memmemberrepo.NewRepo(teams), teams)
}

func str(s string) *string { return &s }

func requireAppError(t *testing.T, err error, status int, code string) *Error {
	t.Helper()
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != status || ae.Code != code {
		t.Fatalf("err=%v (type=%T), want %s %d", err, err, code, status)
	}
	return ae
}

func TestService_RegisterTeam_NormalizesName(t *testing.T) {
	t.Parallel()

	svc := newService()
	team, err := svc.RegisterTeam(context.Background(), RegisterTeamInput{Name: "  team   one "})
	require.NoError(t, err)
	assert.Equal(t, "team one", team.Name)
	assert.NotZero(t, team.ID)

	_, err = svc.RegisterTeam(context.Background(), RegisterTeamInput{Name: "   "})
	requireAppError(t, err, 422, "VALIDATION_ERROR")
}

func TestService_RegisterMember_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newService()
	_, err := svc.RegisterMember(ctx, RegisterMemberInput{Username: str("a"), Age: -1})
	requireAppError(t, err, 422, "VALIDATION_ERROR")

	missing := domain.TeamID(42)
	_, err = svc.RegisterMember(ctx, RegisterMemberInput{Username: str("a"), Age: 1, TeamID: &missing})
	ae := requireAppError(t, err, 422, "VALIDATION_ERROR")
	assert.Equal(t, "teamId", ae.Details["field"])
}

func TestService_RegisterMember_BlankUsernameIsUnset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newService()
	m, err := svc.RegisterMember(ctx, RegisterMemberInput{Username: str("  "), Age: 3})
	require.NoError(t, err)
	assert.Nil(t, m.Username)

	m, err = svc.RegisterMember(ctx, RegisterMemberInput{Username: str(" bob "), Age: 3})
	require.NoError(t, err)
	assert.Equal(t, "bob", m.UsernameOrEmpty())
}

func TestService_GetMember_NotFound(t *testing.T) {
	t.Parallel()

	_, err := newService().GetMember(context.Background(), 99)
	requireAppError(t, err, 404, "MEMBER_NOT_FOUND")
}

func TestService_ChangeTeam(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newService()
	team, err := svc.RegisterTeam(ctx, RegisterTeamInput{Name: "team1"})
	require.NoError(t, err)
	m, err := svc.RegisterMember(ctx, RegisterMemberInput{Username: str("member1"), Age: 10})
	require.NoError(t, err)

	moved, err := svc.ChangeTeam(ctx, m.ID, &team.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.TeamID)
	assert.Equal(t, team.ID, *moved.TeamID)

	rows, err := svc.Search(ctx, domain.MemberSearchCondition{TeamName: str("team1")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, m.ID, rows[0].MemberID)

	left, err := svc.ChangeTeam(ctx, m.ID, nil)
	require.NoError(t, err)
	assert.False(t, left.HasTeam())

	_, err = svc.ChangeTeam(ctx, m.ID+100, nil)
	requireAppError(t, err, 404, "MEMBER_NOT_FOUND")
}

func TestService_ListMembers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newService()
	for _, name := range []string{"a", "b", "a"} {
		_, err := svc.RegisterMember(ctx, RegisterMemberInput{Username: str(name), Age: 1})
		require.NoError(t, err)
	}

	all, err := svc.ListMembers(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	as, err := svc.ListMembers(ctx, str("a"))
	require.NoError(t, err)
	assert.Len(t, as, 2)
}

func TestService_SearchPage_Modes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newService()
	team, err := svc.RegisterTeam(ctx, RegisterTeamInput{Name: "team1"})
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err := svc.RegisterMember(ctx, RegisterMemberInput{Username: str(fmt.Sprintf("member%d", i)), Age: i * 10, TeamID: &team.ID})
		require.NoError(t, err)
	}

	for _, mode := range []SearchMode{SearchModeSimple, SearchModeComplex} {
		page, err := svc.SearchPage(ctx, domain.MemberSearchCondition{}, domain.PageOf(1, 2), mode)
		require.NoError(t, err, mode)
		assert.EqualValues(t, 5, page.Total, mode)
		require.Len(t, page.Content, 2, mode)
		assert.Equal(t, "member3", *page.Content[0].Username, mode)
	}

	_, err = svc.SearchPage(ctx, domain.MemberSearchCondition{}, domain.PageOf(0, 0), SearchModeSimple)
	requireAppError(t, err, 422, "VALIDATION_ERROR")

	_, err = svc.SearchPage(ctx, domain.MemberSearchCondition{}, domain.PageOf(0, 1), SearchMode("bogus"))
	requireAppError(t, err, 422, "VALIDATION_ERROR")
}

type inconsistentRepo struct {
	memberrepo.Repository
}

func (inconsistentRepo) SearchComplex(context.Context, *domain.MemberSearchCondition, domain.PageRequest) (domain.Page[domain.MemberTeamRow], error) {
	return domain.Page[domain.MemberTeamRow]{}, fmt.Errorf("%w: 3 rows at offset 0, total 1", domain.ErrInconsistentPage)
}

func TestService_SearchPage_InconsistentPageIsConflict(t *testing.T) {
	t.Parallel()

	teams := memteamrepo.NewRepo()
	svc := NewService(inconsistentRepo{Repository: memmemberrepo.NewRepo(teams)}, teams)

	_, err := svc.SearchPage(context.Background(), domain.MemberSearchCondition{}, domain.PageOf(0, 10), SearchModeComplex)
	requireAppError(t, err, 409, "INCONSISTENT_PAGE")
}

func TestParseSearchMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]SearchMode{"": SearchModeSimple, "simple": SearchModeSimple, " COMPLEX ": SearchModeComplex} {
		got, err := ParseSearchMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSearchMode("split")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
