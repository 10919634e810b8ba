// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in repository/kv.
//
// WHY "DIRECTORY" AND NOT "TABLE"?
// Each entity type is persisted as ONE JSON array under ONE fixed string
// key — the persistence model the mobile app used with its device
// key-value store. A directory is that whole-collection abstraction:
// every read loads the full array, every write rewrites it. There is no
// partial update, pagination, or index, and the interfaces are shaped so
// implementations can't accidentally grow them.
package repository

import (
	"context"

	"github.com/sakif/paperpal/internal/model"
)

// UserDirectory stores the registered user list.
//
// List never fails on a corrupt stored array: decode problems are logged
// and reported as an empty list, the same "no data" degradation the app
// used. Only storage I/O failures surface as errors.
type UserDirectory interface {
	List(ctx context.Context) ([]model.User, error)
	SaveAll(ctx context.Context, users []model.User) error
}

// EntryDirectory stores diary entries.
//
// Save is an upsert keyed by the numeric entry ID: an existing entry is
// replaced in place (same position, same count), a new one is appended.
// Delete on a missing ID is a silent no-op that still succeeds.
type EntryDirectory interface {
	List(ctx context.Context) ([]model.DiaryEntry, error)
	GetByID(ctx context.Context, id int64) (*model.DiaryEntry, error)
	Save(ctx context.Context, entry *model.DiaryEntry) error
	Delete(ctx context.Context, id int64) error
}

// TagDirectory stores the global tag registry. Add appends without any
// uniqueness check — deduplication is the caller's job.
type TagDirectory interface {
	List(ctx context.Context) ([]model.Tag, error)
	Add(ctx context.Context, tag model.Tag) error
}

// SessionStore tracks the current-user snapshot and the remember-me
// prefill tuple. Both live in storage slots independent of the user list:
// the snapshot is a full copy taken at login, not a reference.
type SessionStore interface {
	// Current returns the logged-in user snapshot, or nil when nobody
	// is logged in.
	Current(ctx context.Context) (*model.User, error)
	SetCurrent(ctx context.Context, user model.User) error
	// Clear removes the current-user snapshot (logout). It does not
	// touch the remember-me tuple.
	Clear(ctx context.Context) error

	// SaveRememberMe persists the prefill tuple when remember is true,
	// and removes the password and flag (keeping the email) when false.
	SaveRememberMe(ctx context.Context, email, password string, remember bool) error
	// Remembered returns the prefill tuple, or nil when remembering is
	// not enabled.
	Remembered(ctx context.Context) (*model.RememberMe, error)
}
