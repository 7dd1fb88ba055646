package services

import (
	"context"

	"github.com/famled/family_finance_app/internal/core/domain"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/rbac"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// ListCategories retrieves a family's categories, optionally filtered by type.
	ListCategories(ctx context.Context, familyID string, categoryType domain.CategoryType, callerUserID string, callerRole rbac.Role) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new category; requires category:create.
	CreateCategory(ctx context.Context, familyID string, req dto.CreateCategoryRequest, creatorUserID string, creatorRole rbac.Role) (*domain.Category, error)

	// UpdateCategory updates a category; requires category:update.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, updaterUserID string, updaterRole rbac.Role) (*domain.Category, error)

	// DeleteCategory removes a category; requires category:delete.
	DeleteCategory(ctx context.Context, categoryID string, deleterUserID string, deleterRole rbac.Role) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
