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
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeService handles business logic for income entries.
type IncomeService struct {
	incomeRepo   portsrepo.IncomeRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	currencyRepo portsrepo.CurrencyReader
	familySvc    portssvc.FamilyAuthorizerSvc
}

// NewIncomeService creates a new IncomeService.
func NewIncomeService(ir portsrepo.IncomeRepositoryFacade, cr portsrepo.CategoryReader, curr portsrepo.CurrencyReader, fs portssvc.FamilyAuthorizerSvc) portssvc.IncomeSvcFacade {
	return &IncomeService{
		incomeRepo:   ir,
		categoryRepo: cr,
		currencyRepo: curr,
		familySvc:    fs,
	}
}

var _ portssvc.IncomeSvcFacade = (*IncomeService)(nil)

// CreateIncome records an income entry; requires income:create and family
// membership with write access.
func (s *IncomeService) CreateIncome(ctx context.Context, familyID string, req dto.CreateIncomeRequest, creatorUserID string, creatorRole rbac.Role) (*domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(creatorRole, rbac.ResourceIncome, rbac.ActionCreate) {
		return nil, fmt.Errorf("%w: role %s cannot create income entries", apperrors.ErrForbidden, creatorRole)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, familyID, creatorUserID, domain.FamilyRoleMember); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := s.validateCategory(ctx, familyID, req.CategoryID); err != nil {
		return nil, err
	}
	if err := validateEntryCurrency(ctx, s.currencyRepo, req.CurrencyCode); err != nil {
		return nil, err
	}

	now := time.Now()
	income := domain.Income{
		IncomeID:     uuid.NewString(),
		FamilyID:     familyID,
		UserID:       creatorUserID,
		CategoryID:   req.CategoryID,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Date:         req.Date,
		Source:       req.Source,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.incomeRepo.SaveIncome(ctx, income); err != nil {
		logger.Error("Failed to save income entry", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, fmt.Errorf("failed to create income entry: %w", err)
	}

	logger.Info("Income entry created", slog.String("income_id", income.IncomeID), slog.String("family_id", familyID))
	return &income, nil
}

// GetIncomeByID retrieves one income entry; read_own vs read_all applies.
func (s *IncomeService) GetIncomeByID(ctx context.Context, incomeID, callerUserID string, callerRole rbac.Role) (*domain.Income, error) {
	income, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find income entry: %w", err)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, income.FamilyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, err
	}
	if income.UserID != callerUserID && !rbac.HasPermission(callerRole, rbac.ResourceIncome, rbac.ActionReadAll) {
		return nil, fmt.Errorf("%w: role %s can only read own income entries", apperrors.ErrForbidden, callerRole)
	}
	return income, nil
}

// ListIncome retrieves a page of a family's income entries. Callers without
// income:read_all are restricted to their own entries.
func (s *IncomeService) ListIncome(ctx context.Context, familyID string, params portsrepo.ListEntriesParams, callerUserID string, callerRole rbac.Role) ([]domain.Income, string, error) {
	if _, err := s.familySvc.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, "", err
	}
	if !rbac.HasPermission(callerRole, rbac.ResourceIncome, rbac.ActionReadAll) {
		params.UserID = callerUserID
	}
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 25
	}

	entries, nextToken, err := s.incomeRepo.ListIncomeByFamily(ctx, familyID, params)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list income entries", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, "", fmt.Errorf("failed to list income entries: %w", err)
	}
	return entries, nextToken, nil
}

// UpdateIncome updates an income entry; update_own vs update_all applies.
func (s *IncomeService) UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, updaterUserID string, updaterRole rbac.Role) (*domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	income, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find income entry: %w", err)
	}
	if err := s.authorizeWrite(ctx, income, updaterUserID, updaterRole, rbac.ActionUpdateOwn, rbac.ActionUpdateAll); err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		income.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, income.FamilyID, *req.CategoryID); err != nil {
			return nil, err
		}
		income.CategoryID = *req.CategoryID
	}
	if req.CurrencyCode != nil {
		if err := validateEntryCurrency(ctx, s.currencyRepo, *req.CurrencyCode); err != nil {
			return nil, err
		}
		income.CurrencyCode = *req.CurrencyCode
	}
	if req.Date != nil {
		income.Date = *req.Date
	}
	if req.Source != nil {
		income.Source = *req.Source
	}
	if req.Notes != nil {
		income.Notes = *req.Notes
	}

	income.LastUpdatedAt = time.Now()
	income.LastUpdatedBy = updaterUserID

	if err := s.incomeRepo.UpdateIncome(ctx, *income); err != nil {
		logger.Error("Failed to update income entry", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return nil, fmt.Errorf("failed to update income entry: %w", err)
	}

	logger.Info("Income entry updated", slog.String("income_id", incomeID))
	return income, nil
}

// DeleteIncome removes an income entry; delete_own vs delete_all applies.
func (s *IncomeService) DeleteIncome(ctx context.Context, incomeID, deleterUserID string, deleterRole rbac.Role) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	income, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find income entry: %w", err)
	}
	if err := s.authorizeWrite(ctx, income, deleterUserID, deleterRole, rbac.ActionDeleteOwn, rbac.ActionDeleteAll); err != nil {
		return err
	}

	if err := s.incomeRepo.DeleteIncome(ctx, incomeID); err != nil {
		logger.Error("Failed to delete income entry", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return fmt.Errorf("failed to delete income entry: %w", err)
	}

	logger.Info("Income entry deleted", slog.String("income_id", incomeID))
	return nil
}

func (s *IncomeService) authorizeWrite(ctx context.Context, income *domain.Income, userID string, role rbac.Role, ownAction, allAction rbac.Action) error {
	if _, err := s.familySvc.AuthorizeMember(ctx, income.FamilyID, userID, domain.FamilyRoleMember); err != nil {
		return err
	}
	if income.UserID == userID {
		if !rbac.HasPermission(role, rbac.ResourceIncome, ownAction) {
			return fmt.Errorf("%w: role %s lacks income:%s", apperrors.ErrForbidden, role, ownAction)
		}
		return nil
	}
	if !rbac.HasPermission(role, rbac.ResourceIncome, allAction) {
		return fmt.Errorf("%w: role %s lacks income:%s", apperrors.ErrForbidden, role, allAction)
	}
	return nil
}

func (s *IncomeService) validateCategory(ctx context.Context, familyID, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
		}
		return fmt.Errorf("failed to validate category: %w", err)
	}
	if category.FamilyID != familyID {
		return fmt.Errorf("%w: category %s belongs to a different family", apperrors.ErrValidation, categoryID)
	}
	if category.Type != domain.CategoryTypeIncome {
		return fmt.Errorf("%w: category %s is not an income category", apperrors.ErrValidation, categoryID)
	}
	return nil
}
