package kv

import (
	"context"
	"strings"
	"testing"

	"github.com/sakif/paperpal/internal/model"
)

func newTestSessionStore(t *testing.T) (*DB, *SessionStore) {
	t.Helper()
	db := newTestStore(t)
	return db, NewSessionStore(db, newTestLogger())
}

// =========================================================================
// CURRENT USER TESTS
// =========================================================================

func TestSession_CurrentWhenLoggedOut(t *testing.T) {
	_, s := newTestSessionStore(t)

	user, err := s.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if user != nil {
		t.Errorf("Current() = %+v, want nil when nobody is logged in", user)
	}
}

func TestSession_SetCurrentThenCurrent(t *testing.T) {
	_, s := newTestSessionStore(t)
	ctx := context.Background()

	want := model.User{ID: "u1", Name: "Ann", Email: "a@x.com", CreatedAt: "2024-01-15T10:00:00Z"}
	if err := s.SetCurrent(ctx, want); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}

	got, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got == nil {
		t.Fatal("Current() = nil after SetCurrent()")
	}
	if got.ID != "u1" || got.Email != "a@x.com" {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}
}

func TestSession_SnapshotExcludesPasswordHash(t *testing.T) {
	db, s := newTestSessionStore(t)
	ctx := context.Background()

	user := model.User{ID: "u1", Name: "Ann", Email: "a@x.com", PasswordHash: "$2a$supersecret"}
	if err := s.SetCurrent(ctx, user); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}

	raw, ok, err := db.Get(ctx, KeyCurrentUser)
	if err != nil || !ok {
		t.Fatalf("Get(%q) = %v, ok=%v", KeyCurrentUser, err, ok)
	}
	if strings.Contains(raw, "supersecret") {
		t.Errorf("current-user snapshot leaked the password hash: %s", raw)
	}
}

func TestSession_Clear(t *testing.T) {
	_, s := newTestSessionStore(t)
	ctx := context.Background()

	if err := s.SetCurrent(ctx, model.User{ID: "u1"}); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	user, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if user != nil {
		t.Errorf("Current() = %+v after Clear(), want nil", user)
	}
}

func TestSession_CorruptSnapshotTreatedAsLoggedOut(t *testing.T) {
	db, s := newTestSessionStore(t)
	ctx := context.Background()

	if err := db.Set(ctx, KeyCurrentUser, "{{{"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	user, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current() with corrupt snapshot error = %v, want nil", err)
	}
	if user != nil {
		t.Errorf("Current() = %+v for corrupt snapshot, want nil", user)
	}
}

// =========================================================================
// REMEMBER-ME TESTS
// =========================================================================

func TestRememberMe_SaveAndGet(t *testing.T) {
	_, s := newTestSessionStore(t)
	ctx := context.Background()

	if err := s.SaveRememberMe(ctx, "a@x.com", "secret1", true); err != nil {
		t.Fatalf("SaveRememberMe() error = %v", err)
	}

	got, err := s.Remembered(ctx)
	if err != nil {
		t.Fatalf("Remembered() error = %v", err)
	}
	if got == nil {
		t.Fatal("Remembered() = nil after enabling remember me")
	}
	if got.Email != "a@x.com" || got.Password != "secret1" || !got.Remember {
		t.Errorf("Remembered() = %+v", got)
	}
}

func TestRememberMe_NotEnabledReturnsNil(t *testing.T) {
	_, s := newTestSessionStore(t)

	got, err := s.Remembered(context.Background())
	if err != nil {
		t.Fatalf("Remembered() error = %v", err)
	}
	if got != nil {
		t.Errorf("Remembered() = %+v on fresh store, want nil", got)
	}
}

func TestRememberMe_DisableKeepsEmail(t *testing.T) {
	db, s := newTestSessionStore(t)
	ctx := context.Background()

	if err := s.SaveRememberMe(ctx, "a@x.com", "secret1", true); err != nil {
		t.Fatalf("SaveRememberMe(enable) error = %v", err)
	}
	if err := s.SaveRememberMe(ctx, "a@x.com", "secret1", false); err != nil {
		t.Fatalf("SaveRememberMe(disable) error = %v", err)
	}

	// Tuple no longer reported...
	got, err := s.Remembered(ctx)
	if err != nil {
		t.Fatalf("Remembered() error = %v", err)
	}
	if got != nil {
		t.Errorf("Remembered() = %+v after disabling, want nil", got)
	}

	// ...password and flag are gone, but the email stays behind.
	if _, ok, _ := db.Get(ctx, KeyPassword); ok {
		t.Error("password key survived disabling remember me")
	}
	if _, ok, _ := db.Get(ctx, KeyRememberMe); ok {
		t.Error("remember flag survived disabling remember me")
	}
	if _, ok, _ := db.Get(ctx, KeyEmail); !ok {
		t.Error("email key should survive disabling remember me")
	}
}

func TestSession_ClearDoesNotTouchRememberMe(t *testing.T) {
	_, s := newTestSessionStore(t)
	ctx := context.Background()

	if err := s.SetCurrent(ctx, model.User{ID: "u1", Email: "a@x.com"}); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}
	if err := s.SaveRememberMe(ctx, "a@x.com", "secret1", true); err != nil {
		t.Fatalf("SaveRememberMe() error = %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	got, err := s.Remembered(ctx)
	if err != nil {
		t.Fatalf("Remembered() error = %v", err)
	}
	if got == nil {
		t.Error("Remembered() = nil after logout, want tuple to survive")
	}
}
