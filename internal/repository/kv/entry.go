package kv

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/sakif/paperpal/internal/apperror"
	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/repository"
)

// compile-time check that *EntryDirectory implements repository.EntryDirectory
var _ repository.EntryDirectory = (*EntryDirectory)(nil)

// EntryDirectory persists diary entries as one JSON array under KeyEntries.
//
// All lookups are linear scans over the decoded array. That is O(n) per
// operation, which sounds bad until you remember n is "diary entries one
// person wrote by hand" — the decode dominates long before the scan does.
// The mutex makes each whole read-modify-write below atomic within the
// process, because Save and Delete perform both the read and the write
// under one lock.
type EntryDirectory struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewEntryDirectory creates an EntryDirectory over the given store.
func NewEntryDirectory(store Store, logger *slog.Logger) *EntryDirectory {
	return &EntryDirectory{store: store, logger: logger}
}

// List returns all diary entries in stored order.
func (d *EntryDirectory) List(ctx context.Context) ([]model.DiaryEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return loadCollection[model.DiaryEntry](ctx, d.store, KeyEntries, d.logger)
}

// GetByID returns the entry with the given ID.
// Returns apperror.ErrNotFound if no entry has that ID.
func (d *EntryDirectory) GetByID(ctx context.Context, id int64) (*model.DiaryEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := loadCollection[model.DiaryEntry](ctx, d.store, KeyEntries, d.logger)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].ID == id {
			entry := entries[i]
			return &entry, nil
		}
	}
	return nil, apperror.NotFound("entry", strconv.FormatInt(id, 10))
}

// Save upserts an entry keyed by its ID: if an entry with the same ID
// exists it is replaced IN PLACE — same position, same count — otherwise
// the entry is appended. The whole array is rewritten either way.
//
// There is no version check: two saves racing on the same ID from
// different processes resolve by write order alone (last write wins).
func (d *EntryDirectory) Save(ctx context.Context, entry *model.DiaryEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := loadCollection[model.DiaryEntry](ctx, d.store, KeyEntries, d.logger)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = *entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, *entry)
	}

	return saveCollection(ctx, d.store, KeyEntries, entries)
}

// Delete removes the entry with the given ID. Deleting an ID that isn't
// present is a silent no-op that still succeeds — the app's delete had
// the same fire-and-forget contract, and callers rely on it being
// idempotent.
func (d *EntryDirectory) Delete(ctx context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := loadCollection[model.DiaryEntry](ctx, d.store, KeyEntries, d.logger)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	return saveCollection(ctx, d.store, KeyEntries, kept)
}
