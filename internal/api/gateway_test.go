package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"taskcli/internal/api"
	"taskcli/internal/service"
	"taskcli/internal/session"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newGateway(t *testing.T, baseURL string, store *session.Store) *api.Gateway {
	t.Helper()
	gw, err := api.New(baseURL, store, nil, 5*time.Second)
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gw
}

func TestGateway_AttachesBearerToken(t *testing.T) {
	store := openStore(t)
	if err := store.Save(session.Session{Token: "tok-xyz", User: service.User{UserName: "a"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, store)
	var out struct{}
	if err := gw.GetJSON(context.Background(), "/api/Task", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestGateway_NoTokenNoHeader(t *testing.T) {
	store := openStore(t)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, store)
	var out struct{}
	if err := gw.PostJSON(context.Background(), "/api/Account/login", map[string]string{}, &out); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header, got %q", gotAuth)
	}
}

func TestGateway_401ClearsSessionAndFiresHook(t *testing.T) {
	store := openStore(t)
	if err := store.Save(session.Session{Token: "stale", User: service.User{UserName: "a"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, store)
	fired := 0
	gw.OnSessionExpired(func() { fired++ })

	err := gw.GetJSON(context.Background(), "/api/Task", &struct{}{})
	if err == nil {
		t.Fatal("expected error; the in-flight call must still fail")
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) || !apiErr.SessionExpired() {
		t.Fatalf("expected session-expired api error, got %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("expected session cleared after 401")
	}
	if fired != 1 {
		t.Errorf("expected hook fired once, fired %d times", fired)
	}
}

func TestGateway_403LeavesSessionAlone(t *testing.T) {
	store := openStore(t)
	if err := store.Save(session.Session{Token: "tok", User: service.User{UserName: "a"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, store)
	err := gw.GetJSON(context.Background(), "/api/Task", &struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !store.IsAuthenticated() {
		t.Error("403 must not clear the session")
	}
}

func TestGateway_ErrorBodyNormalization(t *testing.T) {
	store := openStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":["title too short","priority missing"]}`))
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, store)
	err := gw.GetJSON(context.Background(), "/api/Task", &struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := api.Message(err); got != "title too short, priority missing" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestGateway_TransportFailureGenericMessage(t *testing.T) {
	store := openStore(t)
	gw := newGateway(t, "http://127.0.0.1:1", store)

	err := gw.GetJSON(context.Background(), "/api/Task", &struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := api.Message(err); got != "an unexpected error occurred" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestGateway_GetText(t *testing.T) {
	store := openStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"https://cdn.example.com/p.jpg"`))
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, store)
	got, err := gw.GetText(context.Background(), "/api/User/profile-photo")
	if err != nil {
		t.Fatalf("get text: %v", err)
	}
	if got != "https://cdn.example.com/p.jpg" {
		t.Errorf("unexpected text: %q", got)
	}
}
