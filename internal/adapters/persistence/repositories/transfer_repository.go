package repositories

import (
	"context"
	"time"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/core/domain"

	"gorm.io/gorm"
)

// transferRepository implements TransferRepository interface
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

// Create creates a new transfer request
func (r *transferRepository) Create(ctx context.Context, transfer *models.TransferRequest) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

// GetByID gets a transfer request by ID with its vehicle
func (r *transferRepository) GetByID(ctx context.Context, id string) (*models.TransferRequest, error) {
	var transfer models.TransferRequest
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("id = ?", id).
		First(&transfer).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// ListPendingByFromOwner lists pending requests initiated by an owner
func (r *transferRepository) ListPendingByFromOwner(ctx context.Context, ownerID string) ([]models.TransferRequest, error) {
	var transfers []models.TransferRequest
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("from_owner_id = ? AND status = ?", ownerID, domain.TransferPending).
		Order("created_at DESC").
		Find(&transfers).Error
	if err != nil {
		return nil, err
	}
	return transfers, nil
}

// ListPendingByToMember lists pending requests addressed to a member
func (r *transferRepository) ListPendingByToMember(ctx context.Context, memberID string) ([]models.TransferRequest, error) {
	var transfers []models.TransferRequest
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("to_member_id = ? AND status = ?", memberID, domain.TransferPending).
		Order("created_at DESC").
		Find(&transfers).Error
	if err != nil {
		return nil, err
	}
	return transfers, nil
}

// ListPendingCreatedBefore lists pending requests older than the cutoff
func (r *transferRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.TransferRequest, error) {
	var transfers []models.TransferRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", domain.TransferPending, cutoff).
		Find(&transfers).Error
	if err != nil {
		return nil, err
	}
	return transfers, nil
}

// ResolveIfPending applies updates only while the request is still PENDING.
// A request that already reached a terminal status is never touched again.
func (r *transferRepository) ResolveIfPending(ctx context.Context, id string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TransferRequest{}).
		Where("id = ? AND status = ?", id, domain.TransferPending).
		Updates(updates)
	return result.RowsAffected, result.Error
}
