package teamrepo

import (
	"testing"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/contracttest"
	teamrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

func TestContract_TeamRepo(t *testing.T) {
	contracttest.RunTeamRepo(t, func(t *testing.T) (teamrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
