package bolt

import (
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider opens the bbolt file at path and exposes it as the
// document store. The provider's Closer releases the file lock.
func NewRepositoryProvider(path string) (portsrepo.RepositoryProvider, error) {
	store, err := Open(path)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{Documents: store, Closer: store}, nil
}
