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
)

// CategoryService handles business logic for expense and income categories.
type CategoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	familySvc    portssvc.FamilyAuthorizerSvc
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(cr portsrepo.CategoryRepositoryFacade, fs portssvc.FamilyAuthorizerSvc) portssvc.CategorySvcFacade {
	return &CategoryService{categoryRepo: cr, familySvc: fs}
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

// ListCategories retrieves a family's categories, optionally filtered by type.
func (s *CategoryService) ListCategories(ctx context.Context, familyID string, categoryType domain.CategoryType, callerUserID string, callerRole rbac.Role) ([]domain.Category, error) {
	if !rbac.HasPermission(callerRole, rbac.ResourceCategory, rbac.ActionRead) {
		return nil, fmt.Errorf("%w: role %s cannot read categories", apperrors.ErrForbidden, callerRole)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListCategoriesByFamily(ctx, familyID, categoryType)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list categories", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory persists a new category; requires category:create and
// family admin membership.
func (s *CategoryService) CreateCategory(ctx context.Context, familyID string, req dto.CreateCategoryRequest, creatorUserID string, creatorRole rbac.Role) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(creatorRole, rbac.ResourceCategory, rbac.ActionCreate) {
		return nil, fmt.Errorf("%w: role %s cannot create categories", apperrors.ErrForbidden, creatorRole)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, familyID, creatorUserID, domain.FamilyRoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		FamilyID:   familyID,
		Name:       req.Name,
		Type:       req.Type,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("family_id", familyID))
	return &category, nil
}

// UpdateCategory updates a category; requires category:update and family
// admin membership.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, updaterUserID string, updaterRole rbac.Role) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(updaterRole, rbac.ResourceCategory, rbac.ActionUpdate) {
		return nil, fmt.Errorf("%w: role %s cannot update categories", apperrors.ErrForbidden, updaterRole)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, category.FamilyID, updaterUserID, domain.FamilyRoleAdmin); err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != category.Name {
		category.Name = *req.Name
		changed = true
	}
	if req.Icon != nil && *req.Icon != category.Icon {
		category.Icon = *req.Icon
		changed = true
	}
	if !changed {
		return category, nil
	}

	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = updaterUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// DeleteCategory removes a category; requires category:delete and family
// admin membership.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string, deleterUserID string, deleterRole rbac.Role) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(deleterRole, rbac.ResourceCategory, rbac.ActionDelete) {
		return fmt.Errorf("%w: role %s cannot delete categories", apperrors.ErrForbidden, deleterRole)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find category: %w", err)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, category.FamilyID, deleterUserID, domain.FamilyRoleAdmin); err != nil {
		return err
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		logger.Error("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}
