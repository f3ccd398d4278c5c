package repositories

import (
	"context"

	"motorvault/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// auditRepository implements AuditRepository interface
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Record durably writes a lifecycle audit event
func (r *auditRepository) Record(ctx context.Context, event *models.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
