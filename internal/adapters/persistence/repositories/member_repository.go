package repositories

import (
	"context"

	"motorvault/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetActiveByMemberNumber gets an active member by their member number
func (r *memberRepository) GetActiveByMemberNumber(ctx context.Context, memberNumber string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("member_number = ? AND is_active = ?", memberNumber, true).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateTier updates a member's subscription tier
func (r *memberRepository) UpdateTier(ctx context.Context, id string, tier string) error {
	return r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Update("subscription_tier", tier).Error
}
