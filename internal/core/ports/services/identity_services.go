package services

import (
	"context"

	"github.com/SscSPs/project_ledger/internal/core/domain"
)

// IdentitySvcFacade is the identity collaborator. Sessions are explicit
// values: they begin with SignIn and end with SignOut.
type IdentitySvcFacade interface {
	// SignUp registers a new user and returns its ID.
	SignUp(ctx context.Context, email string, password string) (string, error)

	// SignIn checks the credentials and opens a session carrying a signed token.
	SignIn(ctx context.Context, email string, password string) (*domain.Session, error)

	// CurrentUser returns the user of an active session or apperrors.ErrUnauthorized.
	CurrentUser(ctx context.Context, session *domain.Session) (string, error)

	// SignOut ends the session. Ending an ended session is a no-op.
	SignOut(ctx context.Context, session *domain.Session) error

	// ParseToken restores the session a token was issued for.
	ParseToken(ctx context.Context, token string) (*domain.Session, error)
}
