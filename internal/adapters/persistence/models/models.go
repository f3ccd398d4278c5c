package models

import (
	"time"

	"motorvault/internal/core/domain"

	"gorm.io/gorm"
)

// Member represents the members table
type Member struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	MemberNumber     string    `gorm:"uniqueIndex;size:20;not null" json:"member_number"`
	FullName         string    `gorm:"size:100;not null" json:"full_name"`
	Mobile           string    `gorm:"size:20" json:"mobile"`
	Email            string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	SubscriptionTier string    `gorm:"size:20;default:'basic'" json:"subscription_tier"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// ToIdentity returns the immutable lookup snapshot for this member
func (m *Member) ToIdentity() domain.MemberIdentity {
	return domain.MemberIdentity{
		MemberID:     m.ID,
		MemberNumber: m.MemberNumber,
		FullName:     m.FullName,
		Mobile:       m.Mobile,
		Email:        m.Email,
	}
}

// ToDomain maps the persistence model to the domain entity
func (m *Member) ToDomain() *domain.Member {
	return &domain.Member{
		ID:               m.ID,
		MemberNumber:     m.MemberNumber,
		FullName:         m.FullName,
		Mobile:           m.Mobile,
		Email:            m.Email,
		SubscriptionTier: domain.SubscriptionTier(m.SubscriptionTier),
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Vehicle represents the vehicles table.
// Status transitions are always applied with a conditional update on the
// stored status so concurrent transitions for the same vehicle serialize.
type Vehicle struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	OwnerID          string     `gorm:"size:36;not null;index" json:"owner_id"`
	Rego             string     `gorm:"size:10;not null" json:"rego"`
	Make             string     `gorm:"size:50;not null" json:"make"`
	Model            string     `gorm:"size:50;not null" json:"model"`
	Year             int        `gorm:"not null" json:"year"`
	Status           string     `gorm:"size:20;default:'ACTIVE';index" json:"status"`
	QuarantineEndsAt *time.Time `gorm:"index" json:"quarantine_ends_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Owner            *Member    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// TransferRequest represents the transfer_requests table.
// The to_* columns are the identity snapshot captured at lookup time and are
// never rewritten after creation.
type TransferRequest struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	VehicleID      string     `gorm:"size:36;not null;index" json:"vehicle_id"`
	FromOwnerID    string     `gorm:"size:36;not null;index" json:"from_owner_id"`
	ToMemberID     string     `gorm:"size:36;not null;index" json:"to_member_id"`
	ToMemberNumber string     `gorm:"size:20;not null" json:"to_member_number"`
	ToName         string     `gorm:"size:100;not null" json:"to_name"`
	ToMobile       string     `gorm:"size:20" json:"to_mobile"`
	ToEmail        string     `gorm:"size:100" json:"to_email"`
	Status         string     `gorm:"size:15;default:'PENDING';index" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	Vehicle        *Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (TransferRequest) TableName() string {
	return "transfer_requests"
}

// IsResolved reports whether the request has reached a terminal status
func (t *TransferRequest) IsResolved() bool {
	return t.ResolvedAt != nil
}

// ToIdentity returns the embedded target identity snapshot
func (t *TransferRequest) ToIdentity() domain.MemberIdentity {
	return domain.MemberIdentity{
		MemberID:     t.ToMemberID,
		MemberNumber: t.ToMemberNumber,
		FullName:     t.ToName,
		Mobile:       t.ToMobile,
		Email:        t.ToEmail,
	}
}

// AuditEvent represents the audit_events table. A terminal lifecycle event
// must exist here before the vehicle row it refers to is purged.
type AuditEvent struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Event     string    `gorm:"size:50;not null;index" json:"event"`
	VehicleID string    `gorm:"size:36;not null;index" json:"vehicle_id"`
	ActorID   string    `gorm:"size:36" json:"actor_id"`
	Detail    string    `gorm:"size:500" json:"detail"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&Vehicle{},
		&TransferRequest{},
		&AuditEvent{},
	)
}
