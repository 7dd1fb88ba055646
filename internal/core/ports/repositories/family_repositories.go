package repositories

import (
	"context"

	"github.com/famled/family_finance_app/internal/core/domain"
)

// FamilyReader defines read operations for family data
type FamilyReader interface {
	// FindFamilyByID retrieves a family by ID.
	FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error)

	// FindFamilyByInviteCode retrieves an active family by its invite code.
	FindFamilyByInviteCode(ctx context.Context, inviteCode string) (*domain.Family, error)

	// ListFamiliesForUser retrieves the families a user is a member of.
	ListFamiliesForUser(ctx context.Context, userID string) ([]domain.Family, error)

	// FindMembership retrieves a user's membership in a family.
	FindMembership(ctx context.Context, familyID, userID string) (*domain.UserFamily, error)

	// ListMembers retrieves all non-removed members of a family.
	ListMembers(ctx context.Context, familyID string) ([]domain.UserFamily, error)
}

// FamilyWriter defines write operations for family data
type FamilyWriter interface {
	// SaveFamily persists a new family.
	SaveFamily(ctx context.Context, family domain.Family) error

	// UpdateFamily persists changes to an existing family.
	UpdateFamily(ctx context.Context, family domain.Family) error

	// AddMember adds a user to a family with the given role.
	AddMember(ctx context.Context, membership domain.UserFamily) error

	// UpdateMemberRole changes a member's role within a family.
	UpdateMemberRole(ctx context.Context, familyID, userID string, role domain.UserFamilyRole) error
}

// FamilyRepositoryFacade combines all family-related repository interfaces
type FamilyRepositoryFacade interface {
	FamilyReader
	FamilyWriter
}
