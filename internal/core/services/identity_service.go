package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/utils"
	"github.com/SscSPs/project_ledger/internal/utils/mapping"
	"github.com/go-playground/validator/v10"
)

// IdentityConfig holds the token settings of the identity service.
type IdentityConfig struct {
	JWTSecret string
	Issuer    string
	Expiry    time.Duration
}

// identityService signs users up and in against the users collection.
// Ended sessions are remembered until their tokens expire.
type identityService struct {
	BaseService
	store    portsrepo.DocumentStore
	cfg      IdentityConfig
	validate *validator.Validate
	now      func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // token ID -> expiry
}

// NewIdentityService creates the identity collaborator.
func NewIdentityService(store portsrepo.DocumentStore, cfg IdentityConfig) portssvc.IdentitySvcFacade {
	return newIdentityService(store, cfg, time.Now)
}

func newIdentityService(store portsrepo.DocumentStore, cfg IdentityConfig, now func() time.Time) *identityService {
	if cfg.Expiry <= 0 {
		cfg.Expiry = time.Hour
	}
	return &identityService{
		store:    store,
		cfg:      cfg,
		validate: validator.New(),
		now:      now,
		revoked:  map[string]time.Time{},
	}
}

var _ portssvc.IdentitySvcFacade = (*identityService)(nil)

func (s *identityService) SignUp(ctx context.Context, email string, password string) (string, error) {
	email = utils.NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}

	existing, err := s.findUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := domain.User{Email: email, PasswordHash: hash, CreatedAt: s.now().UTC()}
	id, err := s.store.CreateDocument(ctx, domain.CollectionUsers, mapping.ToModelUser(user))
	if err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User signed up", slog.String("user_id", id))
	return id, nil
}

func (s *identityService) SignIn(ctx context.Context, email string, password string) (*domain.Session, error) {
	user, err := s.findUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	now := s.now()
	token, claims, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.Issuer, now, s.cfg.Expiry)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User signed in", slog.String("user_id", user.UserID))
	return domain.NewSession(user.UserID, token, now, claims.ExpiresAt.Time), nil
}

func (s *identityService) CurrentUser(ctx context.Context, session *domain.Session) (string, error) {
	if !session.Active(s.now()) {
		return "", fmt.Errorf("%w: no active session", apperrors.ErrUnauthorized)
	}
	return session.UserID, nil
}

func (s *identityService) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return fmt.Errorf("%w: no session", apperrors.ErrUnauthorized)
	}
	now := s.now()
	session.End(now)

	claims, err := utils.ParseAndValidateJWT(session.Token, s.cfg.JWTSecret, s.cfg.Issuer, s.now)
	if err != nil {
		// Expired or foreign tokens cannot be used again anyway.
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}

	s.LogInfo(ctx, "User signed out", slog.String("user_id", session.UserID))
	return nil
}

func (s *identityService) ParseToken(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.Issuer, s.now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, fmt.Errorf("%w: session has ended", apperrors.ErrUnauthorized)
	}

	return domain.NewSession(claims.Subject, token, claims.IssuedAt.Time, claims.ExpiresAt.Time), nil
}

func (s *identityService) findUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := s.store.ListDocuments(ctx, domain.CollectionUsers, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	for _, doc := range docs {
		user, err := mapping.ToDomainUser(doc)
		if err != nil {
			return nil, err
		}
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
