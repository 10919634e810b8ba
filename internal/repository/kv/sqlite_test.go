package kv

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

// newTestStore returns a *DB backed by an in-memory SQLite database.
// Everything is lost when the test ends, so tests can't interfere with
// each other or leave files behind.
func newTestStore(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(\":memory:\") error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestLogger returns a logger that discards everything. Directory
// tests exercise the corrupt-data warning paths and we don't want that
// noise in test output.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// =========================================================================
// STORE CONTRACT TESTS
// =========================================================================

func TestStore_GetAbsentKey(t *testing.T) {
	db := newTestStore(t)

	value, ok, err := db.Get(context.Background(), "paperpal_never_set")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for a key that was never set")
	}
	if value != "" {
		t.Errorf("Get() value = %q, want empty", value)
	}
}

func TestStore_SetThenGet(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	if err := db.Set(ctx, KeyUsers, `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, ok, err := db.Get(ctx, KeyUsers)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false after Set()")
	}
	if value != `[{"id":"1"}]` {
		t.Errorf("Get() value = %q", value)
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	if err := db.Set(ctx, KeyTags, "first"); err != nil {
		t.Fatalf("Set() first error = %v", err)
	}
	if err := db.Set(ctx, KeyTags, "second"); err != nil {
		t.Fatalf("Set() second error = %v", err)
	}

	value, _, err := db.Get(ctx, KeyTags)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "second" {
		t.Errorf("Get() after overwrite = %q, want %q", value, "second")
	}
}

func TestStore_Remove(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	if err := db.Set(ctx, KeyCurrentUser, "{}"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := db.Remove(ctx, KeyCurrentUser); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	_, ok, err := db.Get(ctx, KeyCurrentUser)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true after Remove()")
	}
}

func TestStore_RemoveAbsentKeySucceeds(t *testing.T) {
	db := newTestStore(t)

	if err := db.Remove(context.Background(), "paperpal_never_set"); err != nil {
		t.Errorf("Remove() of absent key error = %v, want nil", err)
	}
}

func TestStore_MultiRemove(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{KeyEmail, KeyPassword, KeyRememberMe} {
		if err := db.Set(ctx, key, "x"); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if err := db.MultiRemove(ctx, KeyPassword, KeyRememberMe); err != nil {
		t.Fatalf("MultiRemove() error = %v", err)
	}

	// The two named keys are gone, the third survives
	if _, ok, _ := db.Get(ctx, KeyPassword); ok {
		t.Error("password key still present after MultiRemove")
	}
	if _, ok, _ := db.Get(ctx, KeyRememberMe); ok {
		t.Error("remember flag still present after MultiRemove")
	}
	if _, ok, _ := db.Get(ctx, KeyEmail); !ok {
		t.Error("email key was removed but should survive")
	}
}

func TestStore_Reset(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	for _, key := range AllKeys() {
		if err := db.Set(ctx, key, "data"); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if err := db.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	for _, key := range AllKeys() {
		if _, ok, _ := db.Get(ctx, key); ok {
			t.Errorf("key %q still present after Reset()", key)
		}
	}
}
