package kv

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/repository"
)

// compile-time check that *UserDirectory implements repository.UserDirectory
var _ repository.UserDirectory = (*UserDirectory)(nil)

// UserDirectory persists the registered user list as one JSON array under
// KeyUsers.
//
// WHY A MUTEX?
// The app's store serialized all access on the platform side; database/sql
// gives no such guarantee. The mutex serializes whole-array reads and
// writes within this process. Note it only covers single calls: the
// register flow's read-check-append-write sequence spans several calls
// and is serialized by the service's own lock (see service.AuthService).
// Cross-process access remains last-write-wins and is unsupported.
type UserDirectory struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewUserDirectory creates a UserDirectory over the given store.
func NewUserDirectory(store Store, logger *slog.Logger) *UserDirectory {
	return &UserDirectory{store: store, logger: logger}
}

// List returns all registered users. Absent or corrupt storage yields an
// empty list (see loadCollection); only I/O failures return an error.
func (d *UserDirectory) List(ctx context.Context) ([]model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.list(ctx)
}

func (d *UserDirectory) list(ctx context.Context) ([]model.User, error) {
	stored, err := loadCollection[model.StoredUser](ctx, d.store, KeyUsers, d.logger)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(stored))
	for _, s := range stored {
		users = append(users, s.ToUser())
	}
	return users, nil
}

// SaveAll overwrites the stored user list with the given one. The write
// is a single store operation, atomic from the caller's perspective.
func (d *UserDirectory) SaveAll(ctx context.Context, users []model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saveAll(ctx, users)
}

func (d *UserDirectory) saveAll(ctx context.Context, users []model.User) error {
	stored := make([]model.StoredUser, 0, len(users))
	for _, u := range users {
		stored = append(stored, model.FromUser(u))
	}
	return saveCollection(ctx, d.store, KeyUsers, stored)
}
