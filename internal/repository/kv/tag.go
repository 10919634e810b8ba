package kv

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/repository"
)

// compile-time check that *TagDirectory implements repository.TagDirectory
var _ repository.TagDirectory = (*TagDirectory)(nil)

// TagDirectory persists the global tag registry as one JSON array under
// KeyTags. It deliberately does NOT enforce name uniqueness: the
// duplicate check belongs to the caller (TagService), matching the split
// of responsibility the app used. Bypass the service and you can insert
// the same name twice.
type TagDirectory struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewTagDirectory creates a TagDirectory over the given store.
func NewTagDirectory(store Store, logger *slog.Logger) *TagDirectory {
	return &TagDirectory{store: store, logger: logger}
}

// List returns all registered tags in insertion order.
func (d *TagDirectory) List(ctx context.Context) ([]model.Tag, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return loadCollection[model.Tag](ctx, d.store, KeyTags, d.logger)
}

// Add appends the tag and rewrites the array. No uniqueness check here.
func (d *TagDirectory) Add(ctx context.Context, tag model.Tag) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tags, err := loadCollection[model.Tag](ctx, d.store, KeyTags, d.logger)
	if err != nil {
		return err
	}

	tags = append(tags, tag)
	return saveCollection(ctx, d.store, KeyTags, tags)
}
