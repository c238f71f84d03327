package session_test

import (
	"path/filepath"
	"testing"

	"taskcli/internal/service"
	"taskcli/internal/session"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := openStore(t)

	saved := session.Session{
		Token: "tok-123",
		User:  service.User{UserID: "u-9", UserName: "bob", Email: "bob@example.com"},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected session, got nil")
	}
	if *loaded != saved {
		t.Errorf("round trip mismatch: got %+v, want %+v", *loaded, saved)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openStore(t)

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}
	if store.IsAuthenticated() {
		t.Error("expected unauthenticated")
	}
}

func TestStore_Clear(t *testing.T) {
	store := openStore(t)

	if err := store.Save(session.Session{Token: "tok", User: service.User{UserName: "x"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatal("expected authenticated after save")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("expected unauthenticated after clear")
	}
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session after clear, got %+v", sess)
	}
}

func TestStore_Token(t *testing.T) {
	store := openStore(t)

	if tok := store.Token(); tok != "" {
		t.Errorf("expected empty token, got %q", tok)
	}
	if err := store.Save(session.Session{Token: "abc"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok := store.Token(); tok != "abc" {
		t.Errorf("expected abc, got %q", tok)
	}
}
