package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"motorvault/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initiateInput(vehicleID, memberNumber string) *InitiateInput {
	return &InitiateInput{
		VehicleID:            vehicleID,
		NewOwnerMemberNumber: memberNumber,
	}
}

func TestInitiateMovesVehicleToPendingTransfer(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	assert.Equal(t, domain.TransferPending, transfer.Status)
	assert.Equal(t, owner.ID, transfer.FromOwnerID)
	assert.Equal(t, target.ID, transfer.ToMemberID)
	assert.Equal(t, "Sam Nguyen", transfer.ToName)
	assert.Equal(t, f.clock.Now(), transfer.CreatedAt)

	stored := f.getVehicle(t, vehicle.ID)
	assert.Equal(t, domain.VehiclePendingTransfer, stored.Status)
	assert.Nil(t, stored.QuarantineEndsAt)
	assert.Equal(t, owner.ID, stored.OwnerID, "ownership must not change until acceptance")
}

func TestInitiateRequiresOwnership(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	stranger := f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	_, err := f.transfers.Initiate(context.Background(), stranger.ID, initiateInput(vehicle.ID, "MV-10001"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInitiateBasicTierDenied(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "basic")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	_, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	assert.ErrorIs(t, err, domain.ErrEntitlementDenied)

	stored := f.getVehicle(t, vehicle.ID)
	assert.Equal(t, domain.VehicleActive, stored.Status)
}

func TestInitiateWhileAlreadyPending(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	f.seedMember(t, "MV-10003", "Jo Lee", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	_, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	_, err = f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10003"))
	assert.ErrorIs(t, err, domain.ErrTransferPending)
}

func TestInitiateUnknownVehicle(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")

	_, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput("nope", "MV-10002"))
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestInitiateDeletedVehicleGone(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleDeleted, nil)

	_, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	assert.ErrorIs(t, err, domain.ErrVehicleGone)
}

func TestInitiateRescuesQuarantinedVehicle(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	endsAt := f.clock.Now().Add(10 * 24 * time.Hour)
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleQuarantined, &endsAt)

	_, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	stored := f.getVehicle(t, vehicle.ID)
	assert.Equal(t, domain.VehiclePendingTransfer, stored.Status)
	assert.Nil(t, stored.QuarantineEndsAt, "rescue must clear the countdown")
}

func TestInitiateLapsedQuarantineRefused(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	endsAt := f.clock.Now().Add(-time.Hour)
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleQuarantined, &endsAt)

	_, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	assert.ErrorIs(t, err, domain.ErrVehicleGone)
}

func TestConcurrentInitiateSingleWinner(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, domain.ErrTransferPending)
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one initiation may win")
	assert.Equal(t, attempts-1, lost)
}

func TestCancelReturnsVehicleToActive(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	cancelled, err := f.transfers.Cancel(context.Background(), owner.ID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferCancelled, cancelled.Status)
	require.NotNil(t, cancelled.ResolvedAt)

	stored := f.getVehicle(t, vehicle.ID)
	assert.Equal(t, domain.VehicleActive, stored.Status)
	assert.Equal(t, owner.ID, stored.OwnerID)
	assert.Nil(t, stored.QuarantineEndsAt)
}

func TestCancelOnlyByOriginalOwner(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	_, err = f.transfers.Cancel(context.Background(), target.ID, transfer.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcceptTransfersOwnership(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	accepted, err := f.transfers.Accept(context.Background(), target.ID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferAccepted, accepted.Status)
	require.NotNil(t, accepted.ResolvedAt)

	stored := f.getVehicle(t, vehicle.ID)
	assert.Equal(t, domain.VehicleActive, stored.Status)
	assert.Equal(t, target.ID, stored.OwnerID)
	assert.Nil(t, stored.QuarantineEndsAt)
}

func TestAcceptOnlyByTarget(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	_, err = f.transfers.Accept(context.Background(), owner.ID, transfer.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcceptAtVehicleCeilingLeavesRequestPending(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "basic")
	f.seedVehicle(t, target.ID, domain.VehicleActive, nil) // garage already full for basic
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	_, err = f.transfers.Accept(context.Background(), target.ID, transfer.ID)
	assert.ErrorIs(t, err, domain.ErrVehicleLimit)

	// The request survives the refusal: the owner can still cancel and the
	// target can still reject.
	stored := f.getTransfer(t, transfer.ID)
	assert.Equal(t, domain.TransferPending, stored.Status)
	assert.Equal(t, domain.VehiclePendingTransfer, f.getVehicle(t, vehicle.ID).Status)

	_, err = f.transfers.Cancel(context.Background(), owner.ID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleActive, f.getVehicle(t, vehicle.ID).Status)
}

func TestAcceptAfterUpgradeSucceeds(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "basic")
	f.seedVehicle(t, target.ID, domain.VehicleActive, nil)
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	_, err = f.transfers.Accept(context.Background(), target.ID, transfer.ID)
	require.ErrorIs(t, err, domain.ErrVehicleLimit)

	_, err = f.members.UpgradeSubscription(context.Background(), target.ID, domain.TierPremiumMonthly)
	require.NoError(t, err)

	accepted, err := f.transfers.Accept(context.Background(), target.ID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferAccepted, accepted.Status)
	assert.Equal(t, target.ID, f.getVehicle(t, vehicle.ID).OwnerID)
}

func TestRejectStartsQuarantine(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	rejected, err := f.transfers.Reject(context.Background(), target.ID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferRejected, rejected.Status)

	stored := f.getVehicle(t, vehicle.ID)
	assert.Equal(t, domain.VehicleQuarantined, stored.Status)
	assert.Equal(t, owner.ID, stored.OwnerID, "a declined vehicle stays with its original owner")
	require.NotNil(t, stored.QuarantineEndsAt)
	assert.Equal(t, f.clock.Now().Add(f.policy.GracePeriod), *stored.QuarantineEndsAt)
}

func TestRejectTwiceIsInvalidState(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	_, err = f.transfers.Reject(context.Background(), target.ID, transfer.ID)
	require.NoError(t, err)

	_, err = f.transfers.Reject(context.Background(), target.ID, transfer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRejectByOwnerCancelsInstead(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	resolved, err := f.transfers.Reject(context.Background(), owner.ID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferCancelled, resolved.Status)
	assert.Equal(t, domain.VehicleActive, f.getVehicle(t, vehicle.ID).Status)
}

func TestPendingListsAreScopedByRole(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "premium_monthly")
	vehicle := f.seedVehicle(t, owner.ID, domain.VehicleActive, nil)

	transfer, err := f.transfers.Initiate(context.Background(), owner.ID, initiateInput(vehicle.ID, "MV-10002"))
	require.NoError(t, err)

	outgoing, err := f.transfers.ListPendingByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, transfer.ID, outgoing[0].ID)
	require.NotNil(t, outgoing[0].Vehicle)
	assert.Equal(t, vehicle.Rego, outgoing[0].Vehicle.Rego)

	incoming, err := f.transfers.ListIncoming(context.Background(), target.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, transfer.ID, incoming[0].ID)

	other, err := f.transfers.ListIncoming(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListQuarantinedFormatsEndDate(t *testing.T) {
	f := newFixture()
	owner := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	endsAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	f.seedVehicle(t, owner.ID, domain.VehicleQuarantined, &endsAt)

	items, err := f.transfers.ListQuarantined(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2025-07-01", items[0].QuarantineEndDate)
}
