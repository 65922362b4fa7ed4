package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	idempotencyport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/idempotency"
	memberrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
	teamrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

type CleanupFunc = func()

// MemberRepoFactory returns a member repository and the team repository it joins against.
// Both must be empty and share one store.
type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, teamrepoport.Repository, CleanupFunc)
type TeamRepoFactory func(t *testing.T) (teamrepoport.Repository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:      idempotencyport.Key(uuid.NewString()),
		Method:   "POST",
		Route:    "/members",
		BodyHash: "hash-1",
	}
	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("Get(unknown) ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	rec := idempotencyport.Record{
		StatusCode:  201,
		ContentType: "application/json",
		Body:        []byte(`{"memberId":1}`),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != string(rec.Body) || got.ContentType != rec.ContentType || got.StatusCode != rec.StatusCode {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("CreatedAt=%v, want %v", got.CreatedAt, rec.CreatedAt)
	}

	// A different body under the same key is a different request.
	other := fp
	other.BodyHash = "hash-2"
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("Get(other body) ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte(`{"memberId":2}`)
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != string(rec2.Body) {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}
}

func RunTeamRepo(t *testing.T, newRepo TeamRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	a, err := repo.Save(ctx, domain.Team{Name: "teamA"})
	if err != nil {
		t.Fatalf("Save(teamA): %v", err)
	}
	b, err := repo.Save(ctx, domain.Team{Name: "teamB"})
	if err != nil {
		t.Fatalf("Save(teamB): %v", err)
	}
	if a.ID == 0 || b.ID <= a.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
	}

	got, err := repo.FindByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != a {
		t.Fatalf("FindByID()=%+v, want %+v", got, a)
	}

	a.Name = "teamA renamed"
	if _, err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save(update): %v", err)
	}
	got, err = repo.FindByID(ctx, a.ID)
	if err != nil || got.Name != "teamA renamed" {
		t.Fatalf("FindByID() after update=%+v err=%v", got, err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != a.ID || all[1].ID != b.ID {
		t.Fatalf("FindAll()=%+v, want [%d %d]", all, a.ID, b.ID)
	}

	if _, err := repo.FindByID(ctx, b.ID+1000); !errors.Is(err, teamrepoport.ErrNotFound) {
		t.Fatalf("FindByID(missing) err=%v, want ErrNotFound", err)
	}
	if _, err := repo.Save(ctx, domain.Team{ID: b.ID + 1000, Name: "ghost"}); !errors.Is(err, teamrepoport.ErrNotFound) {
		t.Fatalf("Save(missing) err=%v, want ErrNotFound", err)
	}
}

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, teams, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	team, err := teams.Save(ctx, domain.Team{Name: "teamA"})
	if err != nil {
		t.Fatalf("Save(team): %v", err)
	}

	alice, err := repo.Save(ctx, domain.NewMember("alice", 30, &team))
	if err != nil {
		t.Fatalf("Save(alice): %v", err)
	}
	bob, err := repo.Save(ctx, domain.NewMember("bob", 25, nil))
	if err != nil {
		t.Fatalf("Save(bob): %v", err)
	}
	anon, err := repo.Save(ctx, domain.Member{Age: 5})
	if err != nil {
		t.Fatalf("Save(anonymous): %v", err)
	}
	if alice.ID == 0 || bob.ID <= alice.ID || anon.ID <= bob.ID {
		t.Fatalf("expected increasing ids, got %d, %d, %d", alice.ID, bob.ID, anon.ID)
	}

	got, err := repo.FindByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByID(alice): %v", err)
	}
	if got.UsernameOrEmpty() != "alice" || got.Age != 30 || got.TeamID == nil || *got.TeamID != team.ID {
		t.Fatalf("FindByID(alice)=%+v", got)
	}

	got, err = repo.FindByID(ctx, anon.ID)
	if err != nil {
		t.Fatalf("FindByID(anonymous): %v", err)
	}
	if got.Username != nil || got.HasTeam() {
		t.Fatalf("FindByID(anonymous)=%+v, want nil username and team", got)
	}

	// Update moves bob into the team.
	bob.TeamID = &team.ID
	bob.Age = 26
	if _, err := repo.Save(ctx, bob); err != nil {
		t.Fatalf("Save(update bob): %v", err)
	}
	got, err = repo.FindByID(ctx, bob.ID)
	if err != nil || got.Age != 26 || got.TeamID == nil || *got.TeamID != team.ID {
		t.Fatalf("FindByID(bob) after update=%+v err=%v", got, err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 3 || all[0].ID != alice.ID || all[1].ID != bob.ID || all[2].ID != anon.ID {
		t.Fatalf("FindAll()=%+v, want insertion order", all)
	}

	if _, err := repo.Save(ctx, domain.NewMember("alice", 31, nil)); err != nil {
		t.Fatalf("Save(second alice): %v", err)
	}
	byName, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if len(byName) != 2 || byName[0].ID != alice.ID {
		t.Fatalf("FindByUsername(alice)=%+v, want 2 members starting with %d", byName, alice.ID)
	}
	if none, err := repo.FindByUsername(ctx, "nobody"); err != nil || len(none) != 0 {
		t.Fatalf("FindByUsername(nobody)=%+v err=%v, want empty", none, err)
	}

	if _, err := repo.FindByID(ctx, anon.ID+1000); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("FindByID(missing) err=%v, want ErrNotFound", err)
	}
	if _, err := repo.Save(ctx, domain.Member{ID: anon.ID + 1000, Age: 1}); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("Save(missing) err=%v, want ErrNotFound", err)
	}

	ghost := domain.Team{ID: team.ID + 1000}
	if _, err := repo.Save(ctx, domain.NewMember("carol", 40, &ghost)); !errors.Is(err, memberrepoport.ErrTeamNotFound) {
		t.Fatalf("Save(unknown team) err=%v, want ErrTeamNotFound", err)
	}
}
