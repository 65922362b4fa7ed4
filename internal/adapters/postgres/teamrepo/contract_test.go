package teamrepo

import (
	"testing"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/contracttest"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/postgres/testutil"
	teamrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

func TestContract_PostgresTeamRepo(t *testing.T) {
	contracttest.RunTeamRepo(t, func(t *testing.T) (teamrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(testutil.OpenMigratedPool(t)), nil
	})
}
