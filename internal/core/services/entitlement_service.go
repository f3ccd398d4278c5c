package services

import (
	"motorvault/internal/core/domain"
)

// EntitlementService resolves a subscription tier to its capabilities.
// The tier table comes from configuration so ceilings can change without
// touching the transfer state machine.
type EntitlementService struct {
	tiers map[domain.SubscriptionTier]domain.Entitlement
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(tiers map[domain.SubscriptionTier]domain.Entitlement) *EntitlementService {
	return &EntitlementService{tiers: tiers}
}

// Resolve returns the entitlement for a tier. An unknown tier falls back to
// the most restrictive policy: transfers disabled, a single vehicle.
func (s *EntitlementService) Resolve(tier domain.SubscriptionTier) domain.Entitlement {
	if entitlement, ok := s.tiers[tier]; ok {
		return entitlement
	}
	return domain.Entitlement{TransferEnabled: false, MaxVehicles: 1}
}
