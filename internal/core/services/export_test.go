package services

import (
	"time"

	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
)

// NewIdentityServiceWithClock exposes the clock seam to the external test package.
func NewIdentityServiceWithClock(store portsrepo.DocumentStore, cfg IdentityConfig, now func() time.Time) portssvc.IdentitySvcFacade {
	return newIdentityService(store, cfg, now)
}
