package dto

import (
	"github.com/famled/family_finance_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string              `json:"name" binding:"required,max=100"`
	Type domain.CategoryType `json:"type" binding:"required,oneof=EXPENSE INCOME"`
	Icon string              `json:"icon,omitempty"`
}

// UpdateCategoryRequest defines the updatable category fields.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	FamilyID   string              `json:"familyID"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	Icon       string              `json:"icon,omitempty"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		FamilyID:   c.FamilyID,
		Name:       c.Name,
		Type:       c.Type,
		Icon:       c.Icon,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
