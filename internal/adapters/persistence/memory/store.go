// Package memory provides in-memory implementations of the repository
// interfaces. They honour the same conditional-update contract as the GORM
// adapters and back the service test suites and local development mode.
package memory

import (
	"sync"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/adapters/persistence/repositories"
)

// Store holds all in-memory tables behind a single mutex, so the
// conditional updates below are atomic the same way a row update is.
type Store struct {
	mu        sync.RWMutex
	members   map[string]models.Member
	vehicles  map[string]models.Vehicle
	transfers map[string]models.TransferRequest
	audits    []models.AuditEvent
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		members:   make(map[string]models.Member),
		vehicles:  make(map[string]models.Vehicle),
		transfers: make(map[string]models.TransferRequest),
	}
}

// Members returns the member repository view of the store
func (s *Store) Members() repositories.MemberRepository {
	return &memberRepo{store: s}
}

// Vehicles returns the vehicle repository view of the store
func (s *Store) Vehicles() repositories.VehicleRepository {
	return &vehicleRepo{store: s}
}

// Transfers returns the transfer repository view of the store
func (s *Store) Transfers() repositories.TransferRepository {
	return &transferRepo{store: s}
}

// Audits returns the audit repository view of the store
func (s *Store) Audits() repositories.AuditRepository {
	return &auditRepo{store: s}
}

// AuditEvents returns a copy of all recorded audit events
func (s *Store) AuditEvents() []models.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AuditEvent, len(s.audits))
	copy(out, s.audits)
	return out
}
