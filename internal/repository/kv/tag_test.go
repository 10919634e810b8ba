package kv

import (
	"context"
	"testing"

	"github.com/sakif/paperpal/internal/model"
)

func newTestTagDirectory(t *testing.T) *TagDirectory {
	t.Helper()
	return NewTagDirectory(newTestStore(t), newTestLogger())
}

func TestTagDirectory_AddAndList(t *testing.T) {
	d := newTestTagDirectory(t)
	ctx := context.Background()

	if err := d.Add(ctx, model.Tag{ID: "t1", Name: "holiday"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := d.Add(ctx, model.Tag{ID: "t2", Name: "family"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d tags, want 2", len(got))
	}
	// Insertion order preserved
	if got[0].Name != "holiday" || got[1].Name != "family" {
		t.Errorf("tags out of order: %q, %q", got[0].Name, got[1].Name)
	}
}

func TestTagDirectory_DoesNotEnforceUniqueness(t *testing.T) {
	d := newTestTagDirectory(t)
	ctx := context.Background()

	// The directory appends blindly — deduplication is the service's job.
	if err := d.Add(ctx, model.Tag{ID: "t1", Name: "holiday"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := d.Add(ctx, model.Tag{ID: "t2", Name: "holiday"}); err != nil {
		t.Fatalf("Add() duplicate name error = %v, want nil", err)
	}

	got, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List() returned %d tags, want 2 (duplicates allowed here)", len(got))
	}
}

func TestTagDirectory_ListEmpty(t *testing.T) {
	d := newTestTagDirectory(t)

	got, err := d.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() on empty store returned %d tags, want 0", len(got))
	}
}
