package services

import (
	"context"
	"log"
	"sync/atomic"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/adapters/persistence/repositories"
	"motorvault/internal/config"
	"motorvault/internal/core/domain"
	"motorvault/internal/pkg/clock"

	"github.com/google/uuid"
)

// QuarantineService is the periodic supervisor over time-driven transitions:
// it expires pending requests that outlived the response window, then
// promotes lapsed quarantines to permanent deletion. Sweeps are
// single-flight; a tick that fires while a sweep is still running is
// skipped.
type QuarantineService struct {
	transferSvc  *TransferService
	transferRepo repositories.TransferRepository
	vehicleRepo  repositories.VehicleRepository
	auditRepo    repositories.AuditRepository
	notify       *NotificationService
	clock        clock.Clock
	policy       config.TransferConfig
	running      atomic.Bool
}

// NewQuarantineService creates a new quarantine service
func NewQuarantineService(
	transferSvc *TransferService,
	transferRepo repositories.TransferRepository,
	vehicleRepo repositories.VehicleRepository,
	auditRepo repositories.AuditRepository,
	notify *NotificationService,
	clk clock.Clock,
	policy config.TransferConfig,
) *QuarantineService {
	return &QuarantineService{
		transferSvc:  transferSvc,
		transferRepo: transferRepo,
		vehicleRepo:  vehicleRepo,
		auditRepo:    auditRepo,
		notify:       notify,
		clock:        clk,
		policy:       policy,
	}
}

// SweepResult summarises one sweep pass
type SweepResult struct {
	ExpiredRequests int
	DeletedVehicles int
}

// Sweep runs one pass. Pending requests are expired before the quarantine
// scan so a vehicle is never simultaneously pending and past its response
// window. Failures are logged and retried on the next tick; a vehicle never
// drops out of the scan set.
func (s *QuarantineService) Sweep(ctx context.Context) (*SweepResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("⏭️ Sweep still running, skipping tick")
		return &SweepResult{}, nil
	}
	defer s.running.Store(false)

	result := &SweepResult{}
	result.ExpiredRequests = s.expirePendingRequests(ctx)
	result.DeletedVehicles = s.purgeLapsedQuarantines(ctx)

	if result.ExpiredRequests > 0 || result.DeletedVehicles > 0 {
		log.Printf("🧹 Sweep done: %d requests expired, %d vehicles deleted", result.ExpiredRequests, result.DeletedVehicles)
	}
	return result, nil
}

// expirePendingRequests resolves pending requests older than the response
// window through the same quarantine transition as an explicit reject.
func (s *QuarantineService) expirePendingRequests(ctx context.Context) int {
	cutoff := s.clock.Now().Add(-s.policy.ResponseWindow)
	transfers, err := s.transferRepo.ListPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Sweep pending scan error: %v", err)
		return 0
	}

	var expired int
	for i := range transfers {
		if err := s.transferSvc.ExpireRequest(ctx, &transfers[i]); err != nil {
			// ErrInvalidState means a client resolved it between the scan
			// and this call; anything else is retried next tick.
			if err != domain.ErrInvalidState {
				log.Printf("❌ Expire transfer %s error: %v", transfers[i].ID, err)
			}
			continue
		}
		expired++
	}
	return expired
}

// purgeLapsedQuarantines promotes quarantined vehicles whose countdown has
// ended to DELETED. The audit event is written first and gates the
// transition: if it cannot be made durable the vehicle is retained for
// another cycle, never the other way round.
func (s *QuarantineService) purgeLapsedQuarantines(ctx context.Context) int {
	vehicles, err := s.vehicleRepo.ListQuarantineExpired(ctx, s.clock.Now())
	if err != nil {
		log.Printf("❌ Sweep quarantine scan error: %v", err)
		return 0
	}

	var deleted int
	for _, vehicle := range vehicles {
		if err := s.auditRepo.Record(ctx, &models.AuditEvent{
			ID:        uuid.NewString(),
			Event:     "vehicle_deleted",
			VehicleID: vehicle.ID,
			Detail:    "quarantine lapsed, vehicle purged by sweep",
		}); err != nil {
			log.Printf("❌ Audit write failed for vehicle %s, deletion deferred: %v", vehicle.ID, err)
			continue
		}

		rows, err := s.vehicleRepo.UpdateStatusIf(ctx, vehicle.ID, domain.VehicleQuarantined, map[string]interface{}{
			"status":             domain.VehicleDeleted,
			"quarantine_ends_at": nil,
		})
		if err != nil {
			log.Printf("❌ Delete vehicle %s error: %v", vehicle.ID, err)
			continue
		}
		if rows == 0 {
			// Rescued or already deleted since the scan; nothing to do.
			continue
		}

		// Dependent insurance/finance/roadside/service records are owned by
		// other subsystems: notify them, never force-delete from here.
		s.notify.NotifyVehicleDeleted(vehicle.ID, vehicle.OwnerID)

		log.Printf("🗑️ Vehicle %s deleted after quarantine lapsed", vehicle.ID)
		deleted++
	}
	return deleted
}
