package domain

import (
	"sync"
	"time"
)

// Session is the resolved identity handed to services. It is created on
// sign-in and ended on sign-out; nothing reads identity from globals.
type Session struct {
	UserID    string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time

	mu      sync.Mutex
	endedAt *time.Time
}

// NewSession creates an active session.
func NewSession(userID, token string, issuedAt, expiresAt time.Time) *Session {
	return &Session{UserID: userID, Token: token, IssuedAt: issuedAt, ExpiresAt: expiresAt}
}

// Active reports whether the session has not been ended and has not expired at now.
func (s *Session) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endedAt != nil {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// End marks the session as signed out. Ending twice is a no-op.
func (s *Session) End(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endedAt == nil {
		s.endedAt = &now
	}
}
