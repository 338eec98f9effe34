package store

import (
	"github.com/MKhiriev/go-user-directory/internal/logger"
)

// Storages bundles every repository backed by the shared database handle.
type Storages struct {
	UserRepository
}

// NewStorages wires the repositories to one connection pool.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	logger.Debug().Msg("creating storages")
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
	}
}
