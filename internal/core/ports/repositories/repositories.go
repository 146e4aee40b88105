package repositories

import "io"

// RepositoryProvider holds the persistence dependencies needed by services.
type RepositoryProvider struct {
	Documents DocumentStore
	// Closer releases the underlying store, if it needs releasing.
	Closer io.Closer
}
