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

// ExpenseService handles business logic for expense entries.
type ExpenseService struct {
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	currencyRepo portsrepo.CurrencyReader
	familySvc    portssvc.FamilyAuthorizerSvc
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(er portsrepo.ExpenseRepositoryFacade, cr portsrepo.CategoryReader, curr portsrepo.CurrencyReader, fs portssvc.FamilyAuthorizerSvc) portssvc.ExpenseSvcFacade {
	return &ExpenseService{
		expenseRepo:  er,
		categoryRepo: cr,
		currencyRepo: curr,
		familySvc:    fs,
	}
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// CreateExpense records an expense; requires expense:create and family
// membership with write access.
func (s *ExpenseService) CreateExpense(ctx context.Context, familyID string, req dto.CreateExpenseRequest, creatorUserID string, creatorRole rbac.Role) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(creatorRole, rbac.ResourceExpense, rbac.ActionCreate) {
		return nil, fmt.Errorf("%w: role %s cannot create expenses", apperrors.ErrForbidden, creatorRole)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, familyID, creatorUserID, domain.FamilyRoleMember); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := s.validateCategory(ctx, familyID, req.CategoryID, domain.CategoryTypeExpense); err != nil {
		return nil, err
	}
	if err := validateEntryCurrency(ctx, s.currencyRepo, req.CurrencyCode); err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		FamilyID:     familyID,
		UserID:       creatorUserID,
		CategoryID:   req.CategoryID,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Date:         req.Date,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("family_id", familyID))
	return &expense, nil
}

// GetExpenseByID retrieves one expense. Callers holding only expense:read_own
// may fetch just their own entries; expense:read_all lifts that restriction.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, expenseID, callerUserID string, callerRole rbac.Role) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, expense.FamilyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, err
	}
	if expense.UserID != callerUserID && !rbac.HasPermission(callerRole, rbac.ResourceExpense, rbac.ActionReadAll) {
		return nil, fmt.Errorf("%w: role %s can only read own expenses", apperrors.ErrForbidden, callerRole)
	}
	return expense, nil
}

// ListExpenses retrieves a page of a family's expenses. Callers without
// expense:read_all are restricted to their own entries.
func (s *ExpenseService) ListExpenses(ctx context.Context, familyID string, params portsrepo.ListEntriesParams, callerUserID string, callerRole rbac.Role) ([]domain.Expense, string, error) {
	if _, err := s.familySvc.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, "", err
	}
	if !rbac.HasPermission(callerRole, rbac.ResourceExpense, rbac.ActionReadAll) {
		params.UserID = callerUserID
	}
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 25
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByFamily(ctx, familyID, params)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list expenses", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, "", fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nextToken, nil
}

// UpdateExpense updates an expense. Owners need expense:update_own, anyone
// else needs expense:update_all.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string, updaterRole rbac.Role) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	if err := s.authorizeWrite(ctx, expense, updaterUserID, updaterRole, rbac.ActionUpdateOwn, rbac.ActionUpdateAll); err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, expense.FamilyID, *req.CategoryID, domain.CategoryTypeExpense); err != nil {
			return nil, err
		}
		expense.CategoryID = *req.CategoryID
	}
	if req.CurrencyCode != nil {
		if err := validateEntryCurrency(ctx, s.currencyRepo, *req.CurrencyCode); err != nil {
			return nil, err
		}
		expense.CurrencyCode = *req.CurrencyCode
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = updaterUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		logger.Error("Failed to update expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	logger.Info("Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

// DeleteExpense removes an expense. Owners need expense:delete_own, anyone
// else needs expense:delete_all.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID, deleterUserID string, deleterRole rbac.Role) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find expense: %w", err)
	}
	if err := s.authorizeWrite(ctx, expense, deleterUserID, deleterRole, rbac.ActionDeleteOwn, rbac.ActionDeleteAll); err != nil {
		return err
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		logger.Error("Failed to delete expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// authorizeWrite applies the own/all action split for mutating operations.
func (s *ExpenseService) authorizeWrite(ctx context.Context, expense *domain.Expense, userID string, role rbac.Role, ownAction, allAction rbac.Action) error {
	if _, err := s.familySvc.AuthorizeMember(ctx, expense.FamilyID, userID, domain.FamilyRoleMember); err != nil {
		return err
	}
	if expense.UserID == userID {
		if !rbac.HasPermission(role, rbac.ResourceExpense, ownAction) {
			return fmt.Errorf("%w: role %s lacks expense:%s", apperrors.ErrForbidden, role, ownAction)
		}
		return nil
	}
	if !rbac.HasPermission(role, rbac.ResourceExpense, allAction) {
		return fmt.Errorf("%w: role %s lacks expense:%s", apperrors.ErrForbidden, role, allAction)
	}
	return nil
}

func (s *ExpenseService) validateCategory(ctx context.Context, familyID, categoryID string, want domain.CategoryType) error {
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
	if category.Type != want {
		return fmt.Errorf("%w: category %s is not of type %s", apperrors.ErrValidation, categoryID, want)
	}
	return nil
}
