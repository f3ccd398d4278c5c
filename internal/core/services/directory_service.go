package services

import (
	"context"

	"motorvault/internal/adapters/persistence/repositories"
	"motorvault/internal/core/domain"
)

// DirectoryService resolves human-entered member numbers to identity
// snapshots for the transfer flow.
type DirectoryService struct {
	memberRepo repositories.MemberRepository
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(memberRepo repositories.MemberRepository) *DirectoryService {
	return &DirectoryService{memberRepo: memberRepo}
}

// Lookup resolves a member number to an immutable identity snapshot.
// Fails when no active member holds the number, or when the number resolves
// back to the requester.
func (s *DirectoryService) Lookup(ctx context.Context, requesterID, memberNumber string) (*domain.MemberIdentity, error) {
	if memberNumber == "" {
		return nil, domain.ErrValidation
	}

	member, err := s.memberRepo.GetActiveByMemberNumber(ctx, memberNumber)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}

	if member.ID == requesterID {
		return nil, domain.ErrInvalidTarget
	}

	identity := member.ToIdentity()
	return &identity, nil
}
