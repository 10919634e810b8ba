// Package auth provides password hashing, JWT session tokens, and the
// authentication middleware for the diary API.
//
// SESSION FLOW:
//  1. Client registers or logs in with email + password
//  2. Server verifies against the user directory, persists the session
//     snapshot, and issues a JWT stored in an HttpOnly cookie
//  3. On subsequent API calls, middleware reads the cookie, validates the
//     JWT, and sets the userID in the request context
//  4. Logout clears the cookie and the persisted session snapshot
//
// WHY JWT?
// The token is stateless: the userID and expiry live inside the signed
// token, so validating a request needs no storage round trip. The
// persisted session snapshot still exists — it is the app's own notion
// of "who is logged in on this device" — but per-request auth rides on
// the token alone.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued session token stays valid.
//
// A diary is a personal, single-device app: sessions persist until
// logout rather than expiring aggressively, and there is no refresh
// flow. Seven days is the compromise between "stop re-typing my
// password" and "a stolen cookie eventually dies".
const TokenTTL = 7 * 24 * time.Hour

const issuer = "paperpal"

// TokenService handles JWT creation and validation. It holds the HMAC
// secret used to sign and verify tokens — same secret for both, keep it
// out of the repo.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The standard "sub" (Subject) claim carries
// the internal user ID.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given userID,
// valid for TokenTTL.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, TokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry. Used by
// tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the userID in
// its Subject claim.
//
// The jwt library checks the signature, expiry, and issuer for us.
// Passing WithValidMethods pins the algorithm to HS256, which blocks
// algorithm-confusion attacks ("alg":"none" tokens and friends).
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	userID := c.Subject
	if userID == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return userID, nil
}
