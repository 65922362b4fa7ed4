package teamrepo

import (
	"context"
	"testing"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/contracttest"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite"
	teamrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

func TestContract_SQLiteTeamRepo(t *testing.T) {
	contracttest.RunTeamRepo(t, func(t *testing.T) (teamrepoport.Repository, func()) {
		t.Helper()
		db, err := sqlite.Open(context.Background(), ":memory:")
		if err != nil {
			t.Fatalf("Open() err=%v", err)
		}
		return NewRepo(db), func() { _ = db.Close() }
	})
}
