// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Directory (Data layer)   → reads/writes the key-value store
//
// Services accept primitives and return domain models plus apperror
// values; they know nothing about HTTP, and the handlers know nothing
// about storage. Each service receives its directories as interfaces so
// tests can swap in fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/paperpal/internal/apperror"
	"github.com/sakif/paperpal/internal/auth"
	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/repository"
	"github.com/sakif/paperpal/internal/validate"
)

// AuthService handles registration, login, logout, profile updates, and
// the remember-me prefill data.
//
// WHY A MUTEX IN A SERVICE?
// Register and UpdateProfile are read-modify-write sequences over the
// whole user list: load, check, mutate, save. The app ran these
// sequentially on a single UI thread; an HTTP server runs them
// concurrently, and two registrations interleaving between load and save
// would silently drop one. The mutex restores the app's single-writer
// assumption for the user list within this process.
type AuthService struct {
	users     repository.UserDirectory
	sessions  repository.SessionStore
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger

	mu sync.Mutex
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserDirectory,
	sessions repository.SessionStore,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the authenticated user and the issued session token
// so the handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account.
//
// Fails with a validation error when name/email/password don't pass the
// form rules, and with a conflict when an existing account has the same
// email ignoring case. Email comparison is case-insensitive everywhere —
// "A@X.com" and "a@x.com" are the same account.
//
// On success the new user becomes the current session (registration logs
// you in, as the app did) and a session token is issued.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if msg := validate.Name(name); msg != "" {
		return nil, apperror.ValidationFailed("name", msg)
	}
	if msg := validate.Email(email); msg != "" {
		return nil, apperror.ValidationFailed("email", msg)
	}
	if msg := validate.Password(password); msg != "" {
		return nil, apperror.ValidationFailed("password", msg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading users: %w", err)
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return nil, apperror.Conflict("user", "email already registered")
		}
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	// xid IDs are time-ordered, which keeps the "ID derived from the
	// creation instant" property of the app's Date.now() IDs.
	user := model.User{
		ID:           xid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	users = append(users, user)
	if err := s.users.SaveAll(ctx, users); err != nil {
		return nil, fmt.Errorf("service/auth: saving users: %w", err)
	}

	// Registration logs the new account in.
	if err := s.sessions.SetCurrent(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: saving session: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: &user, Token: token}, nil
}

// Login authenticates an email/password pair.
//
// The scan matches email case-insensitively; the password check is a
// bcrypt verify. Both failure modes — unknown email and wrong password —
// return the SAME unauthorized error: this layer does not reveal which
// one it was.
//
// On success the session snapshot is replaced with the found user and
// the remember-me tuple is saved (or disabled) per the remember flag.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	if msg := validate.Email(email); msg != "" {
		return nil, apperror.ValidationFailed("email", msg)
	}
	if msg := validate.Password(password); msg != "" {
		return nil, apperror.ValidationFailed("password", msg)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading users: %w", err)
	}

	var found *model.User
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			found = &users[i]
			break
		}
	}

	if found == nil || s.passwords.Verify(found.PasswordHash, password) != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	if err := s.sessions.SetCurrent(ctx, *found); err != nil {
		return nil, fmt.Errorf("service/auth: saving session: %w", err)
	}

	if err := s.sessions.SaveRememberMe(ctx, email, password, remember); err != nil {
		// Prefill data is a convenience; failing to save it shouldn't
		// fail the login itself.
		s.logger.Warn("failed to save remember-me data",
			slog.String("userID", found.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("user logged in", slog.String("userID", found.ID))

	token, err := s.tokens.Generate(found.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", found.ID, err)
	}

	return &AuthResult{User: found, Token: token}, nil
}

// Logout clears the current-user snapshot. The remember-me tuple is
// deliberately left in place — it belongs to the login form, not the
// session.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("service/auth: clearing session: %w", err)
	}
	s.logger.Info("user logged out")
	return nil
}

// Remembered returns the login prefill tuple, or nil when remembering is
// not enabled.
func (s *AuthService) Remembered(ctx context.Context) (*model.RememberMe, error) {
	remembered, err := s.sessions.Remembered(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading remember-me data: %w", err)
	}
	return remembered, nil
}

// GetUserByID returns the user record for the given ID via a linear scan
// of the user list. Used by /api/me after the middleware validates the
// session token.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading users: %w", err)
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

// UpdateProfile merges the provided fields into the user with the given
// ID and persists the whole list. Empty strings mean "leave unchanged";
// only name and password can change — email is immutable.
//
// If the updated user is the current session user, the session snapshot
// is re-synced so the two don't drift. A nonexistent ID fails with
// not-found and leaves the stored list untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, id, name, password string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	name = strings.TrimSpace(name)
	if name != "" {
		if msg := validate.Name(name); msg != "" {
			return nil, apperror.ValidationFailed("name", msg)
		}
	}
	if password != "" {
		if msg := validate.Password(password); msg != "" {
			return nil, apperror.ValidationFailed("password", msg)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading users: %w", err)
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.NotFound("user", id)
	}

	if name != "" {
		users[idx].Name = name
	}
	if password != "" {
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("service/auth: hashing password: %w", err)
		}
		users[idx].PasswordHash = hash
	}

	if err := s.users.SaveAll(ctx, users); err != nil {
		return nil, fmt.Errorf("service/auth: saving users: %w", err)
	}

	updated := users[idx]

	// Re-sync the session snapshot when the edited user is logged in.
	current, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: loading session: %w", err)
	}
	if current != nil && current.ID == id {
		if err := s.sessions.SetCurrent(ctx, updated); err != nil {
			return nil, fmt.Errorf("service/auth: re-syncing session: %w", err)
		}
	}

	s.logger.Info("profile updated", slog.String("userID", id))

	return &updated, nil
}

// ValidateToken validates a session token and returns the userID it
// encodes. A thin delegation so callers only need the service package.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return userID, nil
}
