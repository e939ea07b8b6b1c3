// Package repository handles all interactions with the database.
//
// It owns the SQL executed against PostgreSQL and turns result rows into
// model types, abstracting SQL logic away from the service layer.
package repository

import (
	"github.com/deppfellow/capacity-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Capacity *CapacityRepository
}

// NewRepositories constructs the repository container.
//
// Parameter:
//   - s: application container (DB access lives on s.DB, the query template on s.Config.Query)
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Capacity: NewCapacityRepository(s),
	}
}
