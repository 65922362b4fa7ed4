package memberrepo

import (
	"testing"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/contracttest"
	memteamrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/memory/teamrepo"
	memberrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
	teamrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

func newRepos(t *testing.T) (memberrepoport.Repository, teamrepoport.Repository, func()) {
	t.Helper()
	teams := memteamrepo.NewRepo()
	return NewRepo(teams), teams, nil
}

func TestContract_MemberRepo(t *testing.T) {
	contracttest.RunMemberRepo(t, newRepos)
}

func TestContract_Search(t *testing.T) {
	contracttest.RunSearch(t, newRepos)
}
