package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides the pool shared by all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Close releases the pool. It satisfies io.Closer so the provider can own it.
func (r *BaseRepository) Close() error {
	if r.Pool != nil {
		r.Pool.Close()
	}
	return nil
}
