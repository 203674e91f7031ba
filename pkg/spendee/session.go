package spendee

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the access token of one authenticated user. The token is
// replaced as a whole on login and logout, never mutated in place.
type Session struct {
	mu    sync.RWMutex
	state *sessionState
	ttl   time.Duration
	now   func() time.Time
}

type sessionState struct {
	token     string
	issuedAt  time.Time
	expiresAt time.Time
}

func newSession(ttl time.Duration, now func() time.Time) *Session {
	return &Session{ttl: ttl, now: now}
}

// Token returns the current access token
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	if state == nil {
		return "", ErrNotAuthenticated
	}
	if !state.expiresAt.IsZero() && !s.now().Before(state.expiresAt) {
		return "", fmt.Errorf("session expired at %s: %w", state.expiresAt.Format(time.RFC3339), ErrNotAuthenticated)
	}
	return state.token, nil
}

// Authenticated reports whether a usable token is held
func (s *Session) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}

// IssuedAt returns when the current token was obtained, zero if there is none
func (s *Session) IssuedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return time.Time{}
	}
	return s.state.issuedAt
}

// ExpiresAt returns the known expiry of the current token, zero if unknown
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return time.Time{}
	}
	return s.state.expiresAt
}

// Restore installs a token obtained earlier, e.g. one the caller persisted
func (s *Session) Restore(token string) {
	if token == "" {
		s.clear()
		return
	}
	s.set(token)
}

func (s *Session) set(token string) {
	now := s.now()
	state := &sessionState{
		token:     token,
		issuedAt:  now,
		expiresAt: tokenExpiry(token),
	}
	if state.expiresAt.IsZero() && s.ttl > 0 {
		state.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.state = nil
	s.mu.Unlock()
}

// tokenExpiry reads the exp claim when the token is a JWT. Spendee's
// api-uuid tokens are opaque and yield a zero time. The signature cannot be
// checked client side, so it is not.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
