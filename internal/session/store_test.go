package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SetGetClear(t *testing.T) {
	store := NewStore(t.TempDir())

	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() on empty store error = %v", err)
	}
	if got != nil {
		t.Fatalf("Get() on empty store = %+v, want nil", got)
	}

	sess := Session{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		UserID:       "whale01",
	}
	if err := store.Set(sess); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err = store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want session")
	}
	if *got != sess {
		t.Errorf("Get() = %+v, want %+v", *got, sess)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err = store.Get()
	if err != nil {
		t.Fatalf("Get() after Clear() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() after Clear() = %+v, want nil", got)
	}

	// Clearing twice must not fail.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on empty store error = %v", err)
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Set(Session{AccessToken: "old", RefreshToken: "old-r", UserID: "u"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(Session{AccessToken: "new", RefreshToken: "new-r", UserID: "u"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if got := store.AccessToken(); got != "new" {
		t.Errorf("AccessToken() = %q, want %q", got, "new")
	}
	if got := store.RefreshToken(); got != "new-r" {
		t.Errorf("RefreshToken() = %q, want %q", got, "new-r")
	}
}

func TestStore_FieldAccessors(t *testing.T) {
	store := NewStore(t.TempDir())

	if got := store.AccessToken(); got != "" {
		t.Errorf("AccessToken() on empty store = %q, want empty", got)
	}
	if got := store.UserID(); got != "" {
		t.Errorf("UserID() on empty store = %q, want empty", got)
	}

	if err := store.Set(Session{AccessToken: "a", RefreshToken: "r", UserID: "demo"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := store.UserID(); got != "demo" {
		t.Errorf("UserID() = %q, want %q", got, "demo")
	}
}

func TestStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := store.Set(Session{AccessToken: "a", RefreshToken: "r", UserID: "u"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}
