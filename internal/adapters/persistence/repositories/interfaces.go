package repositories

import (
	"context"
	"time"

	"motorvault/internal/adapters/persistence/models"
)

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id string) (*models.Member, error)
	GetActiveByMemberNumber(ctx context.Context, memberNumber string) (*models.Member, error)
	UpdateTier(ctx context.Context, id string, tier string) error
}

// VehicleRepository defines vehicle repository interface.
// UpdateStatusIf is the serialization point for all vehicle state
// transitions: the update only applies when the stored status still matches
// expectedStatus, and the number of affected rows is returned.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]models.Vehicle, error)
	ListQuarantineExpired(ctx context.Context, asOf time.Time) ([]models.Vehicle, error)
	CountOwnedByStatuses(ctx context.Context, ownerID string, statuses []string) (int64, error)
	UpdateStatusIf(ctx context.Context, id, expectedStatus string, updates map[string]interface{}) (int64, error)
}

// TransferRepository defines transfer request repository interface.
// ResolveIfPending follows the same conditional-update discipline: a request
// only moves out of PENDING once, so a resolved request is never mutated.
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.TransferRequest) error
	GetByID(ctx context.Context, id string) (*models.TransferRequest, error)
	ListPendingByFromOwner(ctx context.Context, ownerID string) ([]models.TransferRequest, error)
	ListPendingByToMember(ctx context.Context, memberID string) ([]models.TransferRequest, error)
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.TransferRequest, error)
	ResolveIfPending(ctx context.Context, id string, updates map[string]interface{}) (int64, error)
}

// AuditRepository defines the durable lifecycle audit log interface
type AuditRepository interface {
	Record(ctx context.Context, event *models.AuditEvent) error
}
