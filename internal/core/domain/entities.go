package domain

import "time"

// SubscriptionTier represents a member's billing plan
type SubscriptionTier string

const (
	TierBasic          SubscriptionTier = "basic"
	TierPremiumMonthly SubscriptionTier = "premium_monthly"
	TierPremiumAnnual  SubscriptionTier = "premium_annual"
)

// IsValid reports whether the tier is one of the known plans
func (t SubscriptionTier) IsValid() bool {
	switch t {
	case TierBasic, TierPremiumMonthly, TierPremiumAnnual:
		return true
	}
	return false
}

// Vehicle statuses
const (
	VehicleActive          = "ACTIVE"
	VehiclePendingTransfer = "PENDING_TRANSFER"
	VehicleQuarantined     = "QUARANTINED"
	VehicleDeleted         = "DELETED"
)

// Transfer request statuses
const (
	TransferPending   = "PENDING"
	TransferAccepted  = "ACCEPTED"
	TransferRejected  = "REJECTED"
	TransferCancelled = "CANCELLED"
	TransferExpired   = "EXPIRED"
)

// Entitlement is the set of capabilities derived from a subscription tier
type Entitlement struct {
	TransferEnabled bool `json:"transfer_enabled"`
	MaxVehicles     int  `json:"max_vehicles"`
}

// MemberIdentity is the immutable identity snapshot captured at lookup time.
// It is embedded into a transfer request and never re-resolved, so a target
// editing their profile mid-flow cannot alter an in-flight request.
type MemberIdentity struct {
	MemberID     string `json:"member_id"`
	MemberNumber string `json:"member_number"`
	FullName     string `json:"full_name"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
}

// Member represents an account holder in the domain layer
type Member struct {
	ID               string
	MemberNumber     string
	FullName         string
	Mobile           string
	Email            string
	SubscriptionTier SubscriptionTier
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Vehicle represents a member-owned vehicle in the domain layer
type Vehicle struct {
	ID               string
	OwnerID          string
	Rego             string
	Make             string
	Model            string
	Year             int
	Status           string
	QuarantineEndsAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TransferRequest is the record of an attempt to move a vehicle between owners
type TransferRequest struct {
	ID          string
	VehicleID   string
	FromOwnerID string
	To          MemberIdentity
	Status      string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}
