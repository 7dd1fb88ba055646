package services

import (
	"context"

	"github.com/famled/family_finance_app/internal/core/domain"
	"github.com/famled/family_finance_app/internal/dto"
)

// FamilyReaderSvc defines read operations for family data
type FamilyReaderSvc interface {
	// GetFamilyByID retrieves a family the caller is a member of.
	GetFamilyByID(ctx context.Context, familyID, callerUserID string) (*domain.Family, error)

	// ListFamiliesForUser retrieves the caller's families.
	ListFamiliesForUser(ctx context.Context, userID string) ([]domain.Family, error)

	// ListMembers retrieves the members of a family the caller belongs to.
	ListMembers(ctx context.Context, familyID, callerUserID string) ([]domain.UserFamily, error)
}

// FamilyWriterSvc defines write operations for family data
type FamilyWriterSvc interface {
	// CreateFamily creates a family; the creator becomes its first ADMIN
	// member and an invite code is generated.
	CreateFamily(ctx context.Context, req dto.CreateFamilyRequest, creatorUserID string) (*domain.Family, error)

	// JoinFamily adds the caller as a MEMBER of the family owning the
	// invite code.
	JoinFamily(ctx context.Context, inviteCode, userID, userName string) (*domain.Family, error)

	// UpdateMemberRole changes a member's family role; caller must be a
	// family ADMIN.
	UpdateMemberRole(ctx context.Context, familyID, targetUserID string, role domain.UserFamilyRole, callerUserID string) error

	// RegenerateInviteCode replaces the family's invite code; caller must be
	// a family ADMIN.
	RegenerateInviteCode(ctx context.Context, familyID, callerUserID string) (*domain.Family, error)

	// DeactivateFamily disables a family; caller must be a family ADMIN.
	DeactivateFamily(ctx context.Context, familyID, callerUserID string) error
}

// FamilyAuthorizerSvc answers membership questions for other services.
type FamilyAuthorizerSvc interface {
	// AuthorizeMember verifies the user belongs to the family with at least
	// the given family role, returning the membership.
	AuthorizeMember(ctx context.Context, familyID, userID string, minRole domain.UserFamilyRole) (*domain.UserFamily, error)
}

// FamilySvcFacade combines all family-related service interfaces
type FamilySvcFacade interface {
	FamilyReaderSvc
	FamilyWriterSvc
	FamilyAuthorizerSvc
}
