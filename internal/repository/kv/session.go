package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/repository"
)

// compile-time check that *SessionStore implements repository.SessionStore
var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore persists the current-user snapshot and the remember-me
// tuple in their own storage slots, independent of the user list.
//
// THE SNAPSHOT CAN DRIFT:
// The snapshot is a full copy of the user taken at login. Nothing
// automatically re-syncs it when the underlying user record changes —
// only the profile-update path does so explicitly. Since user records
// are never deleted, the "snapshot points at a vanished user" drift the
// scheme theoretically allows never occurs in practice.
//
// No mutex here: each slot is a single key written in one store call,
// there is no read-modify-write to protect.
type SessionStore struct {
	store  Store
	logger *slog.Logger
}

// NewSessionStore creates a SessionStore over the given store.
func NewSessionStore(store Store, logger *slog.Logger) *SessionStore {
	return &SessionStore{store: store, logger: logger}
}

// Current returns the logged-in user snapshot, or nil when nobody is
// logged in. A corrupt snapshot is logged and treated as "not logged in".
func (s *SessionStore) Current(ctx context.Context) (*model.User, error) {
	raw, ok, err := s.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("loading current user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("stored current user is corrupt, treating as logged out",
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return &user, nil
}

// SetCurrent stores the given user as the current session snapshot.
// The password hash is excluded by the model's json tags — the snapshot
// holds only displayable profile fields.
func (s *SessionStore) SetCurrent(ctx context.Context, user model.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding current user: %w", err)
	}
	if err := s.store.Set(ctx, KeyCurrentUser, string(encoded)); err != nil {
		return fmt.Errorf("saving current user: %w", err)
	}
	return nil
}

// Clear removes the current-user snapshot. The remember-me tuple is left
// alone — it survives logout so the next login can still be prefilled.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clearing current user: %w", err)
	}
	return nil
}

// SaveRememberMe persists or disables the login prefill tuple.
//
// Enabled: email, password, and the "true" flag are written to their
// three keys. Disabled: the password and the flag are removed in one
// MultiRemove, but the email is KEPT — same asymmetry the app had, so a
// user who unticks the box still gets their email prefilled.
func (s *SessionStore) SaveRememberMe(ctx context.Context, email, password string, remember bool) error {
	if !remember {
		if err := s.store.MultiRemove(ctx, KeyPassword, KeyRememberMe); err != nil {
			return fmt.Errorf("disabling remember me: %w", err)
		}
		return nil
	}

	if err := s.store.Set(ctx, KeyEmail, email); err != nil {
		return fmt.Errorf("saving remembered email: %w", err)
	}
	if err := s.store.Set(ctx, KeyPassword, password); err != nil {
		return fmt.Errorf("saving remembered password: %w", err)
	}
	if err := s.store.Set(ctx, KeyRememberMe, "true"); err != nil {
		return fmt.Errorf("saving remember flag: %w", err)
	}
	return nil
}

// Remembered returns the prefill tuple, or nil when remembering is not
// enabled (flag absent/false, or no email stored).
func (s *SessionStore) Remembered(ctx context.Context) (*model.RememberMe, error) {
	email, okEmail, err := s.store.Get(ctx, KeyEmail)
	if err != nil {
		return nil, fmt.Errorf("loading remembered email: %w", err)
	}
	flag, _, err := s.store.Get(ctx, KeyRememberMe)
	if err != nil {
		return nil, fmt.Errorf("loading remember flag: %w", err)
	}
	if !okEmail || email == "" || flag != "true" {
		return nil, nil
	}

	password, _, err := s.store.Get(ctx, KeyPassword)
	if err != nil {
		return nil, fmt.Errorf("loading remembered password: %w", err)
	}

	return &model.RememberMe{
		Email:    email,
		Password: password,
		Remember: true,
	}, nil
}
