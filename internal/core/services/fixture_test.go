package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"motorvault/internal/adapters/persistence/memory"
	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/config"
	"motorvault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable clock so window and countdown arithmetic can be
// asserted to the exact instant.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testPolicy() config.TransferConfig {
	return config.TransferConfig{
		GracePeriod:                 30 * 24 * time.Hour,
		ResponseWindow:              7 * 24 * time.Hour,
		SweepSchedule:               "@daily",
		QuarantineCountsTowardLimit: true,
		Tiers: map[domain.SubscriptionTier]domain.Entitlement{
			domain.TierBasic:          {TransferEnabled: false, MaxVehicles: 1},
			domain.TierPremiumMonthly: {TransferEnabled: true, MaxVehicles: 4},
			domain.TierPremiumAnnual:  {TransferEnabled: true, MaxVehicles: 6},
		},
	}
}

type fixture struct {
	store      *memory.Store
	clock      *fakeClock
	policy     config.TransferConfig
	directory  *DirectoryService
	members    *MemberService
	transfers  *TransferService
	quarantine *QuarantineService
}

func newFixture() *fixture {
	store := memory.NewStore()
	clk := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	policy := testPolicy()

	entitlements := NewEntitlementService(policy.Tiers)
	directory := NewDirectoryService(store.Members())
	notify := NewNotificationService("")
	transfers := NewTransferService(
		store.Members(), store.Vehicles(), store.Transfers(), store.Audits(),
		directory, entitlements, notify, clk, policy,
	)
	quarantine := NewQuarantineService(
		transfers, store.Transfers(), store.Vehicles(), store.Audits(),
		notify, clk, policy,
	)

	return &fixture{
		store:      store,
		clock:      clk,
		policy:     policy,
		directory:  directory,
		members:    NewMemberService(store.Members(), entitlements),
		transfers:  transfers,
		quarantine: quarantine,
	}
}

func (f *fixture) seedMember(t *testing.T, memberNumber, fullName, tier string) *models.Member {
	t.Helper()
	member := &models.Member{
		ID:               uuid.NewString(),
		MemberNumber:     memberNumber,
		FullName:         fullName,
		Mobile:           "0400000000",
		Email:            memberNumber + "@example.com",
		SubscriptionTier: tier,
		IsActive:         true,
		CreatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.store.Members().Create(context.Background(), member))
	return member
}

func (f *fixture) seedInactiveMember(t *testing.T, memberNumber, fullName string) *models.Member {
	t.Helper()
	member := &models.Member{
		ID:               uuid.NewString(),
		MemberNumber:     memberNumber,
		FullName:         fullName,
		Email:            memberNumber + "@example.com",
		SubscriptionTier: string(domain.TierBasic),
		IsActive:         false,
		CreatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.store.Members().Create(context.Background(), member))
	return member
}

func (f *fixture) seedVehicle(t *testing.T, ownerID, status string, quarantineEndsAt *time.Time) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Rego:             "ABC123",
		Make:             "Toyota",
		Model:            "Land Cruiser",
		Year:             2019,
		Status:           status,
		QuarantineEndsAt: quarantineEndsAt,
		CreatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.store.Vehicles().Create(context.Background(), vehicle))
	return vehicle
}

func (f *fixture) getVehicle(t *testing.T, id string) *models.Vehicle {
	t.Helper()
	vehicle, err := f.store.Vehicles().GetByID(context.Background(), id)
	require.NoError(t, err)
	return vehicle
}

func (f *fixture) getTransfer(t *testing.T, id string) *models.TransferRequest {
	t.Helper()
	transfer, err := f.store.Transfers().GetByID(context.Background(), id)
	require.NoError(t, err)
	return transfer
}
