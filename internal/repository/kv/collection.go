package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// loadCollection decodes the JSON array stored under key.
//
// DEGRADED READS:
// An absent key decodes to an empty collection — that's first launch.
// A present-but-corrupt value ALSO decodes to an empty collection, with a
// warning logged: the app treated undecodable storage as "no data" rather
// than bricking itself, and callers here get the same behavior. Only a
// storage I/O failure is a real error.
func loadCollection[T any](ctx context.Context, store Store, key string, logger *slog.Logger) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("stored collection is corrupt, treating as empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return []T{}, nil
	}
	return items, nil
}

// saveCollection encodes items as one JSON array and overwrites the value
// under key. The whole collection is rewritten on every save — there are
// no partial updates in this persistence model.
func saveCollection[T any](ctx context.Context, store Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(encoded)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
