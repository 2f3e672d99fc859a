package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return NewStore(db)
}

func mustRegister(t *testing.T, store *Store, username string) *models.User {
	t.Helper()

	user, err := store.Register(context.Background(), username, username+"@gmail.com", "password")
	if err != nil {
		t.Fatalf("register %q: %v", username, err)
	}
	return user
}

func TestRegisterStartsWithEmptyBlockList(t *testing.T) {
	store := newTestStore(t)
	user := mustRegister(t, store, "pinaroz")

	if user.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if len(user.BlockedUsers) != 0 {
		t.Fatalf("new user should have an empty block list, got %v", user.BlockedUsers)
	}
	if user.Password == "password" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterDuplicateUsernameLeavesCountUnchanged(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustRegister(t, store, "pinaroz")

	before, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	_, err = store.Register(ctx, "pinaroz", "other@gmail.com", "password")
	v := apperr.Validation(err)
	if v == nil {
		t.Fatalf("expected a validation error, got %v", err)
	}
	msgs, ok := v.Fields["username"]
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected one username-scoped message, got %v", v.Fields)
	}
	if msgs[0] != "User (pinaroz) exists. Please try different username." {
		t.Fatalf("unexpected message: %q", msgs[0])
	}

	after, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("user count changed from %d to %d on failed registration", before, after)
	}
}

func TestRegisterAggregatesAllFieldErrors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustRegister(t, store, "pinaroz")

	// Same username and same email in one request: both reported at once.
	_, err := store.Register(ctx, "pinaroz", "pinaroz@gmail.com", "password")
	v := apperr.Validation(err)
	if v == nil {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if _, ok := v.Fields["username"]; !ok {
		t.Errorf("missing username error: %v", v.Fields)
	}
	if _, ok := v.Fields["email"]; !ok {
		t.Errorf("missing email error: %v", v.Fields)
	}
}

func TestAuthenticate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustRegister(t, store, "pinaroz")

	user, err := store.Authenticate(ctx, "pinaroz@gmail.com", "password")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "pinaroz" {
		t.Fatalf("authenticated wrong user: %q", user.Username)
	}

	if _, err := store.Authenticate(ctx, "pinaroz@gmail.com", "wrong"); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("wrong password: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := store.Authenticate(ctx, "nobody@gmail.com", "password"); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("unknown email: expected ErrUnauthenticated, got %v", err)
	}
}

func TestBlockPersistsAndIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pinar := mustRegister(t, store, "pinaroz")
	target := mustRegister(t, store, "usertobeblocked")

	if err := store.Block(ctx, pinar, target.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	if !store.IsBlocking(pinar, target.ID) {
		t.Fatal("expected target to be blocked")
	}

	// Second block of the same id is a no-op.
	if err := store.Block(ctx, pinar, target.ID); err != nil {
		t.Fatalf("repeat block: %v", err)
	}
	if len(pinar.BlockedUsers) != 1 {
		t.Fatalf("block list length changed on repeat block: %v", pinar.BlockedUsers)
	}

	// The mutation must be persisted, not just in-memory.
	reloaded, err := store.ByID(ctx, pinar.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.BlockedUsers.Contains(target.ID) {
		t.Fatalf("block list not persisted: %v", reloaded.BlockedUsers)
	}
}

func TestUnblockIsExactInverse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pinar := mustRegister(t, store, "pinaroz")
	target := mustRegister(t, store, "usertobeblocked")

	if err := store.Block(ctx, pinar, target.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := store.Unblock(ctx, pinar, target.ID); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if store.IsBlocking(pinar, target.ID) {
		t.Fatal("still blocking after unblock")
	}

	reloaded, err := store.ByID(ctx, pinar.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.BlockedUsers.Contains(target.ID) {
		t.Fatal("unblock not persisted")
	}

	// Unblocking an id that is not blocked is a no-op, not an error.
	if err := store.Unblock(ctx, pinar, target.ID); err != nil {
		t.Fatalf("repeat unblock: %v", err)
	}
}

func TestBlockUnknownTargetFails(t *testing.T) {
	store := newTestStore(t)
	pinar := mustRegister(t, store, "pinaroz")

	err := store.Block(context.Background(), pinar, 9999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(pinar.BlockedUsers) != 0 {
		t.Fatalf("block list mutated on failed block: %v", pinar.BlockedUsers)
	}
}

func TestBlockSelfRejected(t *testing.T) {
	store := newTestStore(t)
	pinar := mustRegister(t, store, "pinaroz")

	err := store.Block(context.Background(), pinar, pinar.ID)
	if apperr.Validation(err) == nil {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if pinar.BlockedUsers.Contains(pinar.ID) {
		t.Fatal("user ended up blocking themselves")
	}
}

func TestSetBlockedToggle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pinar := mustRegister(t, store, "pinaroz")
	target := mustRegister(t, store, "usertobeblocked")

	if err := store.SetBlocked(ctx, pinar, "usertobeblocked", true); err != nil {
		t.Fatalf("SetBlocked true: %v", err)
	}
	if !pinar.BlockedUsers.Contains(target.ID) {
		t.Fatal("target not blocked")
	}

	if err := store.SetBlocked(ctx, pinar, "usertobeblocked", false); err != nil {
		t.Fatalf("SetBlocked false: %v", err)
	}
	if pinar.BlockedUsers.Contains(target.ID) {
		t.Fatal("target still blocked")
	}

	if err := store.SetBlocked(ctx, pinar, "wrongusername", true); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown username, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pinar := mustRegister(t, store, "pinaroz")

	deleted, err := store.Delete(ctx, pinar.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Username != "pinaroz" {
		t.Fatalf("deleted record echo has wrong user: %q", deleted.Username)
	}

	if _, err := store.ByID(ctx, pinar.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := store.Delete(ctx, pinar.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestDeleteLeavesOtherBlockListsIntact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	pinar := mustRegister(t, store, "pinaroz")
	target := mustRegister(t, store, "usertobeblocked")

	if err := store.Block(ctx, pinar, target.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	if _, err := store.Delete(ctx, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// No cascade: the dangling id stays and stays harmless.
	reloaded, err := store.ByID(ctx, pinar.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.BlockedUsers.Contains(target.ID) {
		t.Fatal("expected dangling blocked id to remain after target deletion")
	}
}
