package services

import (
	"context"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/adapters/persistence/repositories"
	"motorvault/internal/core/domain"
)

// MemberService handles member profile and subscription business logic.
// Tier changes normally arrive from the billing collaborator; this service
// exposes the upgrade path the client calls after a successful payment.
type MemberService struct {
	memberRepo   repositories.MemberRepository
	entitlements *EntitlementService
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository, entitlements *EntitlementService) *MemberService {
	return &MemberService{
		memberRepo:   memberRepo,
		entitlements: entitlements,
	}
}

// GetByID returns a member by ID
func (s *MemberService) GetByID(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}

// UpgradeSubscription moves a member to a new tier
func (s *MemberService) UpgradeSubscription(ctx context.Context, memberID string, tier domain.SubscriptionTier) (*models.Member, error) {
	if !tier.IsValid() {
		return nil, domain.ErrUnknownTier
	}

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, domain.ErrMemberNotFound
	}

	if err := s.memberRepo.UpdateTier(ctx, memberID, string(tier)); err != nil {
		return nil, err
	}

	return s.memberRepo.GetByID(ctx, memberID)
}

// GetEntitlements resolves the caller's current entitlement from their tier
func (s *MemberService) GetEntitlements(ctx context.Context, memberID string) (*domain.Entitlement, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	entitlement := s.entitlements.Resolve(domain.SubscriptionTier(member.SubscriptionTier))
	return &entitlement, nil
}
