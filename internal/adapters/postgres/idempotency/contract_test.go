package idempotency

import (
	"testing"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/contracttest"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/postgres/testutil"
	idempotencyport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/idempotency"
)

func TestContract_PostgresIdempotencyStore(t *testing.T) {
	contracttest.RunIdempotencyStore(t, func(t *testing.T) (idempotencyport.Store, func()) {
		t.Helper()
		return NewStore(testutil.OpenMigratedPool(t)), nil
	})
}
