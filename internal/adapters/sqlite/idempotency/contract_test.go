package idempotency

import (
	"context"
	"testing"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/contracttest"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite"
	idempotencyport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/idempotency"
)

func TestContract_SQLiteIdempotencyStore(t *testing.T) {
	contracttest.RunIdempotencyStore(t, func(t *testing.T) (idempotencyport.Store, func()) {
		t.Helper()
		db, err := sqlite.Open(context.Background(), ":memory:")
		if err != nil {
			t.Fatalf("Open() err=%v", err)
		}
		return NewStore(db), func() { _ = db.Close() }
	})
}
