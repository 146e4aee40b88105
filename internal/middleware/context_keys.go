package middleware

import (
	"context"

	"github.com/SscSPs/project_ledger/internal/core/domain"
)

// contextKey is the type of keys stored in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	sessionKey   = contextKey("session")
)

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromCtx retrieves the session stored by the auth middleware.
func GetSessionFromCtx(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.Session)
	return session, ok && session != nil
}
