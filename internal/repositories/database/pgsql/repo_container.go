package pgsql

import (
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	store := newPgxDocumentStore(dbPool)
	return portsrepo.RepositoryProvider{
		Documents: store,
		Closer:    &store.BaseRepository,
	}
}
