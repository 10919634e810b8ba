package kv

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sakif/paperpal/internal/apperror"
	"github.com/sakif/paperpal/internal/model"
)

func newTestEntryDirectory(t *testing.T) (*DB, *EntryDirectory) {
	t.Helper()
	db := newTestStore(t)
	return db, NewEntryDirectory(db, newTestLogger())
}

// seedEntries saves the given entries and fails the test on error.
func seedEntries(t *testing.T, d *EntryDirectory, entries ...model.DiaryEntry) {
	t.Helper()
	for i := range entries {
		if err := d.Save(context.Background(), &entries[i]); err != nil {
			t.Fatalf("seeding entry %d: %v", entries[i].ID, err)
		}
	}
}

// =========================================================================
// SAVE (UPSERT) TESTS
// =========================================================================

func TestEntrySave_NewIDAppends(t *testing.T) {
	_, d := newTestEntryDirectory(t)
	ctx := context.Background()

	seedEntries(t, d,
		model.DiaryEntry{ID: 1700000000001, Date: "2023-11-14", Title: "First", Mood: model.MoodHappy, Category: model.CategoryDaily},
		model.DiaryEntry{ID: 1700000000002, Date: "2023-11-15", Title: "Second", Mood: model.MoodCalm, Category: model.CategoryBooks},
	)

	got, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(got))
	}
	if got[0].Title != "First" || got[1].Title != "Second" {
		t.Errorf("entries out of order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestEntrySave_ExistingIDReplacesInPlace(t *testing.T) {
	_, d := newTestEntryDirectory(t)
	ctx := context.Background()

	seedEntries(t, d,
		model.DiaryEntry{ID: 1, Title: "one"},
		model.DiaryEntry{ID: 2, Title: "two"},
		model.DiaryEntry{ID: 3, Title: "three"},
	)

	// Replace the middle entry
	updated := model.DiaryEntry{ID: 2, Title: "two, edited", Mood: model.MoodExcited}
	if err := d.Save(ctx, &updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// Count unchanged, position preserved
	if len(got) != 3 {
		t.Fatalf("List() returned %d entries after upsert, want 3", len(got))
	}
	if got[1].ID != 2 || got[1].Title != "two, edited" {
		t.Errorf("entry 2 not replaced in place: got position 1 = %+v", got[1])
	}
	if got[0].Title != "one" || got[2].Title != "three" {
		t.Errorf("neighboring entries disturbed: %q, %q", got[0].Title, got[2].Title)
	}
}

func TestEntrySave_RoundTripPreservesOptionalFields(t *testing.T) {
	_, d := newTestEntryDirectory(t)
	ctx := context.Background()

	want := model.DiaryEntry{
		ID:             1700000000003,
		Date:           "2023-11-16",
		Title:          "Beach day",
		Content:        "Sand everywhere.",
		Mood:           model.MoodHappy,
		Category:       model.CategoryTravel,
		Location:       "Cox's Bazar",
		Images:         []string{"img_001.jpg", "img_002.jpg"},
		AudioRecording: "note_001.m4a",
		Weather:        "sunny",
		Tags:           []string{"holiday", "sea"},
		IsPrivate:      true,
		LastEdited:     "2023-11-16T18:04:05Z",
		ReminderDate:   "2024-11-16",
		IsFavorite:     true,
	}

	if err := d.Save(ctx, &want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := d.GetByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", *got, want)
	}
}

// =========================================================================
// GET BY ID TESTS
// =========================================================================

func TestEntryGetByID_NotFound(t *testing.T) {
	_, d := newTestEntryDirectory(t)

	_, err := d.GetByID(context.Background(), 424242)
	if err == nil {
		t.Fatal("GetByID() should have returned an error for a missing ID")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestEntryDelete_RemovesMatchingEntry(t *testing.T) {
	_, d := newTestEntryDirectory(t)
	ctx := context.Background()

	seedEntries(t, d,
		model.DiaryEntry{ID: 1, Title: "keep"},
		model.DiaryEntry{ID: 2, Title: "drop"},
	)

	if err := d.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("List() after delete = %+v, want only entry 1", got)
	}
}

func TestEntryDelete_MissingIDIsSilentNoOp(t *testing.T) {
	_, d := newTestEntryDirectory(t)
	ctx := context.Background()

	seedEntries(t, d, model.DiaryEntry{ID: 1, Title: "only"})

	// Deleting an ID that was never there still reports success...
	if err := d.Delete(ctx, 999); err != nil {
		t.Fatalf("Delete() of missing ID error = %v, want nil", err)
	}

	// ...and leaves the list untouched.
	got, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("List() changed by no-op delete: %+v", got)
	}
}

func TestEntryList_CorruptArrayTreatedAsEmpty(t *testing.T) {
	db, d := newTestEntryDirectory(t)
	ctx := context.Background()

	if err := db.Set(ctx, KeyEntries, "not json at all"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() with corrupt data error = %v, want nil (degraded empty)", err)
	}
	if len(got) != 0 {
		t.Errorf("List() with corrupt data returned %d entries, want 0", len(got))
	}
}
