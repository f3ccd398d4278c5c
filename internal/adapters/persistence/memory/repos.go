package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Members
// ============================================================

type memberRepo struct {
	store *Store
}

func (r *memberRepo) Create(ctx context.Context, member *models.Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.members[member.ID]; ok {
		return fmt.Errorf("member %s already exists", member.ID)
	}
	r.store.members[member.ID] = *member
	return nil
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	member, ok := r.store.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &member, nil
}

func (r *memberRepo) GetActiveByMemberNumber(ctx context.Context, memberNumber string) (*models.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, member := range r.store.members {
		if member.MemberNumber == memberNumber && member.IsActive {
			m := member
			return &m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memberRepo) UpdateTier(ctx context.Context, id string, tier string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	member, ok := r.store.members[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	member.SubscriptionTier = tier
	member.UpdatedAt = time.Now()
	r.store.members[id] = member
	return nil
}

// ============================================================
// Vehicles
// ============================================================

type vehicleRepo struct {
	store *Store
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.vehicles[vehicle.ID]; ok {
		return fmt.Errorf("vehicle %s already exists", vehicle.ID)
	}
	r.store.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	vehicle, ok := r.store.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &vehicle, nil
}

func (r *vehicleRepo) ListByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]models.Vehicle, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var vehicles []models.Vehicle
	for _, vehicle := range r.store.vehicles {
		if vehicle.OwnerID == ownerID && vehicle.Status == status {
			vehicles = append(vehicles, vehicle)
		}
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].CreatedAt.Before(vehicles[j].CreatedAt)
	})
	return vehicles, nil
}

func (r *vehicleRepo) ListQuarantineExpired(ctx context.Context, asOf time.Time) ([]models.Vehicle, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var vehicles []models.Vehicle
	for _, vehicle := range r.store.vehicles {
		if vehicle.Status == domain.VehicleQuarantined && vehicle.QuarantineEndsAt != nil && !vehicle.QuarantineEndsAt.After(asOf) {
			vehicles = append(vehicles, vehicle)
		}
	}
	return vehicles, nil
}

func (r *vehicleRepo) CountOwnedByStatuses(ctx context.Context, ownerID string, statuses []string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, vehicle := range r.store.vehicles {
		if vehicle.OwnerID != ownerID {
			continue
		}
		for _, status := range statuses {
			if vehicle.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *vehicleRepo) UpdateStatusIf(ctx context.Context, id, expectedStatus string, updates map[string]interface{}) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	vehicle, ok := r.store.vehicles[id]
	if !ok || vehicle.Status != expectedStatus {
		return 0, nil
	}
	for key, value := range updates {
		switch key {
		case "status":
			vehicle.Status = value.(string)
		case "owner_id":
			vehicle.OwnerID = value.(string)
		case "quarantine_ends_at":
			vehicle.QuarantineEndsAt = toTimePtr(value)
		}
	}
	vehicle.UpdatedAt = time.Now()
	r.store.vehicles[id] = vehicle
	return 1, nil
}

// ============================================================
// Transfer requests
// ============================================================

type transferRepo struct {
	store *Store
}

func (r *transferRepo) Create(ctx context.Context, transfer *models.TransferRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.transfers[transfer.ID]; ok {
		return fmt.Errorf("transfer %s already exists", transfer.ID)
	}
	r.store.transfers[transfer.ID] = *transfer
	return nil
}

func (r *transferRepo) GetByID(ctx context.Context, id string) (*models.TransferRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	transfer, ok := r.store.transfers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.attachVehicle(&transfer)
	return &transfer, nil
}

func (r *transferRepo) ListPendingByFromOwner(ctx context.Context, ownerID string) ([]models.TransferRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var transfers []models.TransferRequest
	for _, transfer := range r.store.transfers {
		if transfer.FromOwnerID == ownerID && transfer.Status == domain.TransferPending {
			r.attachVehicle(&transfer)
			transfers = append(transfers, transfer)
		}
	}
	sortNewestFirst(transfers)
	return transfers, nil
}

func (r *transferRepo) ListPendingByToMember(ctx context.Context, memberID string) ([]models.TransferRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var transfers []models.TransferRequest
	for _, transfer := range r.store.transfers {
		if transfer.ToMemberID == memberID && transfer.Status == domain.TransferPending {
			r.attachVehicle(&transfer)
			transfers = append(transfers, transfer)
		}
	}
	sortNewestFirst(transfers)
	return transfers, nil
}

func (r *transferRepo) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.TransferRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var transfers []models.TransferRequest
	for _, transfer := range r.store.transfers {
		if transfer.Status == domain.TransferPending && !transfer.CreatedAt.After(cutoff) {
			transfers = append(transfers, transfer)
		}
	}
	return transfers, nil
}

func (r *transferRepo) ResolveIfPending(ctx context.Context, id string, updates map[string]interface{}) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	transfer, ok := r.store.transfers[id]
	if !ok || transfer.Status != domain.TransferPending {
		return 0, nil
	}
	for key, value := range updates {
		switch key {
		case "status":
			transfer.Status = value.(string)
		case "resolved_at":
			transfer.ResolvedAt = toTimePtr(value)
		}
	}
	r.store.transfers[id] = transfer
	return 1, nil
}

// attachVehicle mirrors the GORM Preload; caller must hold the store lock
func (r *transferRepo) attachVehicle(transfer *models.TransferRequest) {
	if vehicle, ok := r.store.vehicles[transfer.VehicleID]; ok {
		v := vehicle
		transfer.Vehicle = &v
	}
}

// ============================================================
// Audit events
// ============================================================

type auditRepo struct {
	store *Store
}

func (r *auditRepo) Record(ctx context.Context, event *models.AuditEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits = append(r.store.audits, *event)
	return nil
}

// ============================================================
// Helpers
// ============================================================

func sortNewestFirst(transfers []models.TransferRequest) {
	sort.Slice(transfers, func(i, j int) bool {
		return transfers[i].CreatedAt.After(transfers[j].CreatedAt)
	})
}

func toTimePtr(value interface{}) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case *time.Time:
		return v
	default:
		return nil
	}
}
