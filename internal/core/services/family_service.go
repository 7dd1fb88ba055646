package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/utils"
	"github.com/google/uuid"
)

// inviteCodeBytes is the entropy of a family invite code; 8 bytes hex-encodes
// to a 16-character code.
const inviteCodeBytes = 8

// familyRoleRank orders family roles for minimum-role checks. REMOVED is
// absent: a removed member never passes authorization.
var familyRoleRank = map[domain.UserFamilyRole]int{
	domain.FamilyRoleReadOnly: 1,
	domain.FamilyRoleMember:   2,
	domain.FamilyRoleAdmin:    3,
}

// FamilyService handles business logic for families and memberships.
type FamilyService struct {
	familyRepo   portsrepo.FamilyRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(fr portsrepo.FamilyRepositoryFacade, cr portsrepo.CurrencyReader) portssvc.FamilySvcFacade {
	return &FamilyService{
		familyRepo:   fr,
		currencyRepo: cr,
	}
}

var _ portssvc.FamilySvcFacade = (*FamilyService)(nil)

// CreateFamily creates a family, generates its invite code, and makes the
// creator the initial family admin.
func (s *FamilyService) CreateFamily(ctx context.Context, req dto.CreateFamilyRequest, creatorUserID string) (*domain.Family, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DefaultCurrencyCode != nil {
		if err := s.validateCurrencyCode(ctx, *req.DefaultCurrencyCode); err != nil {
			return nil, err
		}
	}

	inviteCode, err := utils.GenerateSecureRandomString(inviteCodeBytes)
	if err != nil {
		logger.Error("Failed to generate invite code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	now := time.Now()
	family := domain.Family{
		FamilyID:            uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		InviteCode:          inviteCode,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.familyRepo.SaveFamily(ctx, family); err != nil {
		logger.Error("Failed to save family in repository", slog.String("error", err.Error()), slog.String("family_name", req.Name))
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	membership := domain.UserFamily{
		UserID:   creatorUserID,
		FamilyID: family.FamilyID,
		Role:     domain.FamilyRoleAdmin,
		JoinedAt: now,
	}
	if err := s.familyRepo.AddMember(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new family", slog.String("error", err.Error()), slog.String("family_id", family.FamilyID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to family: %w", err)
	}

	logger.Info("Family created", slog.String("family_id", family.FamilyID), slog.String("creator_user_id", creatorUserID))
	return &family, nil
}

// JoinFamily adds the caller as a MEMBER of the family owning the invite code.
func (s *FamilyService) JoinFamily(ctx context.Context, inviteCode, userID, userName string) (*domain.Family, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	family, err := s.familyRepo.FindFamilyByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid invite code", apperrors.ErrNotFound)
		}
		logger.Error("Failed to look up invite code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if !family.IsActive {
		return nil, fmt.Errorf("%w: family is not active", apperrors.ErrValidation)
	}

	existing, err := s.familyRepo.FindMembership(ctx, family.FamilyID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check existing membership", slog.String("error", err.Error()), slog.String("family_id", family.FamilyID))
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil && existing.Role != domain.FamilyRoleRemoved {
		return nil, fmt.Errorf("%w: already a member of this family", apperrors.ErrDuplicate)
	}

	if existing != nil {
		// Rejoining after removal reuses the membership row.
		if err := s.familyRepo.UpdateMemberRole(ctx, family.FamilyID, userID, domain.FamilyRoleMember); err != nil {
			logger.Error("Failed to restore membership", slog.String("error", err.Error()), slog.String("family_id", family.FamilyID), slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to join family: %w", err)
		}
	} else {
		membership := domain.UserFamily{
			UserID:   userID,
			UserName: userName,
			FamilyID: family.FamilyID,
			Role:     domain.FamilyRoleMember,
			JoinedAt: time.Now(),
		}
		if err := s.familyRepo.AddMember(ctx, membership); err != nil {
			logger.Error("Failed to add member to family", slog.String("error", err.Error()), slog.String("family_id", family.FamilyID), slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to join family: %w", err)
		}
	}

	logger.Info("User joined family", slog.String("family_id", family.FamilyID), slog.String("user_id", userID))
	return family, nil
}

// GetFamilyByID retrieves a family the caller is a member of.
func (s *FamilyService) GetFamilyByID(ctx context.Context, familyID, callerUserID string) (*domain.Family, error) {
	if _, err := s.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, err
	}
	family, err := s.familyRepo.FindFamilyByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}
	return family, nil
}

// ListFamiliesForUser retrieves the caller's families.
func (s *FamilyService) ListFamiliesForUser(ctx context.Context, userID string) ([]domain.Family, error) {
	families, err := s.familyRepo.ListFamiliesForUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list families for user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return families, nil
}

// ListMembers retrieves the members of a family the caller belongs to.
func (s *FamilyService) ListMembers(ctx context.Context, familyID, callerUserID string) ([]domain.UserFamily, error) {
	if _, err := s.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.familyRepo.ListMembers(ctx, familyID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list family members", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// UpdateMemberRole changes a member's family role; caller must be a family ADMIN.
func (s *FamilyService) UpdateMemberRole(ctx context.Context, familyID, targetUserID string, role domain.UserFamilyRole, callerUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleAdmin); err != nil {
		return err
	}
	if targetUserID == callerUserID && role != domain.FamilyRoleAdmin {
		// The last admin demoting themselves would orphan the family.
		members, err := s.familyRepo.ListMembers(ctx, familyID)
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}
		adminCount := 0
		for _, m := range members {
			if m.Role == domain.FamilyRoleAdmin {
				adminCount++
			}
		}
		if adminCount <= 1 {
			return fmt.Errorf("%w: cannot demote the only admin of a family", apperrors.ErrValidation)
		}
	}

	if _, err := s.familyRepo.FindMembership(ctx, familyID, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user is not a member of this family", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if err := s.familyRepo.UpdateMemberRole(ctx, familyID, targetUserID, role); err != nil {
		logger.Error("Failed to update member role", slog.String("error", err.Error()), slog.String("family_id", familyID), slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to update member role: %w", err)
	}

	logger.Info("Family member role updated", slog.String("family_id", familyID), slog.String("target_user_id", targetUserID), slog.String("new_role", string(role)))
	return nil
}

// RegenerateInviteCode replaces the family's invite code; caller must be a
// family ADMIN. The old code stops working immediately.
func (s *FamilyService) RegenerateInviteCode(ctx context.Context, familyID, callerUserID string) (*domain.Family, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleAdmin); err != nil {
		return nil, err
	}

	family, err := s.familyRepo.FindFamilyByID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find family: %w", err)
	}

	inviteCode, err := utils.GenerateSecureRandomString(inviteCodeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}
	family.InviteCode = inviteCode
	family.LastUpdatedAt = time.Now()
	family.LastUpdatedBy = callerUserID

	if err := s.familyRepo.UpdateFamily(ctx, *family); err != nil {
		logger.Error("Failed to update family invite code", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, fmt.Errorf("failed to regenerate invite code: %w", err)
	}

	logger.Info("Invite code regenerated", slog.String("family_id", familyID))
	return family, nil
}

// DeactivateFamily disables a family; caller must be a family ADMIN.
func (s *FamilyService) DeactivateFamily(ctx context.Context, familyID, callerUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleAdmin); err != nil {
		return err
	}

	family, err := s.familyRepo.FindFamilyByID(ctx, familyID)
	if err != nil {
		return fmt.Errorf("failed to find family: %w", err)
	}
	if !family.IsActive {
		return nil
	}

	family.IsActive = false
	family.LastUpdatedAt = time.Now()
	family.LastUpdatedBy = callerUserID

	if err := s.familyRepo.UpdateFamily(ctx, *family); err != nil {
		logger.Error("Failed to deactivate family", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return fmt.Errorf("failed to deactivate family: %w", err)
	}

	logger.Info("Family deactivated", slog.String("family_id", familyID))
	return nil
}

// AuthorizeMember verifies the user belongs to the family with at least the
// given family role, returning the membership.
func (s *FamilyService) AuthorizeMember(ctx context.Context, familyID, userID string, minRole domain.UserFamilyRole) (*domain.UserFamily, error) {
	membership, err := s.familyRepo.FindMembership(ctx, familyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s is not a member of family %s", apperrors.ErrForbidden, userID, familyID)
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if membership.Role == domain.FamilyRoleRemoved {
		return nil, fmt.Errorf("%w: user %s was removed from family %s", apperrors.ErrForbidden, userID, familyID)
	}
	if familyRoleRank[membership.Role] < familyRoleRank[minRole] {
		return nil, fmt.Errorf("%w: requires family role %s or higher", apperrors.ErrForbidden, minRole)
	}
	return membership, nil
}

func (s *FamilyService) validateCurrencyCode(ctx context.Context, code string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	_, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		// Fall back to the static registry so a fresh database still accepts
		// the common currencies.
		if currency.IsSupported(code) {
			return nil
		}
		logger.Warn("Invalid default currency code provided", slog.String("currency_code", code))
		return fmt.Errorf("%w: currency code %s not found", apperrors.ErrValidation, code)
	}
	logger.Error("Failed to check currency code existence", slog.String("error", err.Error()), slog.String("currency_code", code))
	return fmt.Errorf("failed to validate currency code: %w", err)
}
