// Package kv implements the repository directories on top of a persistent
// string-keyed key-value store.
//
// PERSISTENCE MODEL:
// The mobile app persisted everything through the device's async key-value
// store: each entity collection is ONE JSON array encoded as ONE string
// value under ONE fixed key. This package preserves that model exactly —
// the stored bytes are interchangeable with what the app wrote — while
// backing the store itself with embedded SQLite (see sqlite.go).
//
// The fixed keys below are the app's original key names. Changing any of
// them orphans existing data, so don't.
package kv

// Storage keys. One collection (or scalar) per key.
const (
	KeyUsers       = "paperpal_users"
	KeyCurrentUser = "paperpal_current_user"
	KeyRememberMe  = "paperpal_remember_me"
	KeyEmail       = "paperpal_email"
	KeyPassword    = "paperpal_password"
	KeyEntries     = "paperpal_entries"
	KeyTags        = "paperpal_tags"
)

// AllKeys lists every storage key the application owns. Used by Reset to
// wipe all app data in one MultiRemove, mirroring the app's "clear all
// data" helper.
func AllKeys() []string {
	return []string{
		KeyUsers,
		KeyCurrentUser,
		KeyRememberMe,
		KeyEmail,
		KeyPassword,
		KeyEntries,
		KeyTags,
	}
}
