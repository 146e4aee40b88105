package services

import (
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/events"
	"github.com/SscSPs/project_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:    NewLedgerService(repos.Documents, publisher),
		Project:   NewProjectService(repos.Documents),
		Reference: NewReferenceService(repos.Documents),
		Identity: NewIdentityService(repos.Documents, IdentityConfig{
			JWTSecret: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
			Expiry:    cfg.JWTExpiryDuration,
		}),
	}
}
