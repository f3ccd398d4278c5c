package repositories

import (
	"context"
	"time"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/core/domain"

	"gorm.io/gorm"
)

// vehicleRepository implements VehicleRepository interface
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// GetByID gets a vehicle by ID
func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListByOwnerAndStatus lists an owner's vehicles in the given status
func (r *vehicleRepository) ListByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Order("created_at ASC").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ListQuarantineExpired lists quarantined vehicles whose countdown has lapsed
func (r *vehicleRepository) ListQuarantineExpired(ctx context.Context, asOf time.Time) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("status = ? AND quarantine_ends_at <= ?", domain.VehicleQuarantined, asOf).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CountOwnedByStatuses counts an owner's vehicles across the given statuses
func (r *vehicleRepository) CountOwnedByStatuses(ctx context.Context, ownerID string, statuses []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("owner_id = ? AND status IN ?", ownerID, statuses).
		Count(&count).Error
	return count, err
}

// UpdateStatusIf applies updates only when the stored status still matches
// expectedStatus. Zero affected rows means another transition won the race.
func (r *vehicleRepository) UpdateStatusIf(ctx context.Context, id, expectedStatus string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}
