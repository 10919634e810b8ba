// Package model defines the data structures used throughout the application.
package model

// User represents a registered diary account.
//
// WHY PasswordHash AND NOT Password?
// The mobile prototype kept passwords in plain text inside the stored user
// list. That was a known weakness, not a contract — we store a bcrypt hash
// instead. Login pass/fail semantics are unchanged; only the at-rest
// representation differs.
//
// The `json:"-"` tag keeps the hash out of every API response and out of
// the persisted current-user snapshot. The hash is serialized in exactly
// one place: the StoredUser records inside the user list.
//
// WHY CreatedAt string (not time.Time)?
// Creation instants were written by the app as ISO-8601 strings. We never
// do arithmetic on them, only display them, so a string keeps the stored
// representation compatible with existing installs.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"createdAt"`
}

// StoredUser is the on-disk shape of a record in the paperpal_users array.
// The password field keeps its original JSON name so existing installs
// still decode; it now holds a bcrypt hash rather than plain text.
type StoredUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	CreatedAt    string `json:"createdAt"`
}

// ToUser converts the stored record to the in-memory model.
func (s StoredUser) ToUser() User {
	return User{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		CreatedAt:    s.CreatedAt,
	}
}

// FromUser converts an in-memory user to its stored shape.
func FromUser(u User) StoredUser {
	return StoredUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// RememberMe is the persisted login-form prefill tuple.
//
// It is independent of the session: logging out does not clear it, and it
// is only ever read to prefill the login screen. When enabled it stores
// the password as submitted — carried over from the app because prefill
// needs the original text. See DESIGN.md.
type RememberMe struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}
