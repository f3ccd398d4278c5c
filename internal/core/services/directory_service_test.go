package services

import (
	"context"
	"testing"

	"motorvault/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupReturnsIdentitySnapshot(t *testing.T) {
	f := newFixture()
	requester := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	target := f.seedMember(t, "MV-10002", "Sam Nguyen", "basic")

	identity, err := f.directory.Lookup(context.Background(), requester.ID, "MV-10002")
	require.NoError(t, err)

	assert.Equal(t, target.ID, identity.MemberID)
	assert.Equal(t, "MV-10002", identity.MemberNumber)
	assert.Equal(t, "Sam Nguyen", identity.FullName)
	assert.Equal(t, target.Email, identity.Email)
}

func TestLookupUnknownMemberNumber(t *testing.T) {
	f := newFixture()
	requester := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")

	_, err := f.directory.Lookup(context.Background(), requester.ID, "MV-99999")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestLookupInactiveMemberNotFound(t *testing.T) {
	f := newFixture()
	requester := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")
	f.seedInactiveMember(t, "MV-10003", "Jo Lee")

	_, err := f.directory.Lookup(context.Background(), requester.ID, "MV-10003")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestLookupSelfTargetRefused(t *testing.T) {
	f := newFixture()
	requester := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")

	_, err := f.directory.Lookup(context.Background(), requester.ID, "MV-10001")
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
}

func TestLookupEmptyMemberNumber(t *testing.T) {
	f := newFixture()
	requester := f.seedMember(t, "MV-10001", "Alex Carter", "premium_monthly")

	_, err := f.directory.Lookup(context.Background(), requester.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
