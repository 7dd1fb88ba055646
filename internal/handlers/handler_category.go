package handlers

import (
	"net/http"

	"github.com/famled/family_finance_app/internal/core/domain"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category management requests.
type CategoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs portssvc.CategorySvcFacade) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

// registerCategoryRoutes sets up category routes under /families/:familyID.
func registerCategoryRoutes(families *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := NewCategoryHandler(categoryService)

	categories := families.Group("/:familyID/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:categoryID", h.UpdateCategory)
		categories.DELETE("/:categoryID", h.DeleteCategory)
	}
}

// ListCategories godoc
// @Summary List family categories
// @Tags categories
// @Produce json
// @Param familyID path string true "Family ID"
// @Param type query string false "Filter by type (EXPENSE or INCOME)"
// @Success 200 {array} dto.CategoryResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	categoryType := domain.CategoryType(c.Query("type"))
	if categoryType != "" && categoryType != domain.CategoryTypeExpense && categoryType != domain.CategoryTypeIncome {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid category type filter"})
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), c.Param("familyID"), categoryType, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// CreateCategory godoc
// @Summary Create category
// @Description Creates an expense or income category for the family. Family admins only.
// @Tags categories
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID"
// @Param category body dto.CreateCategoryRequest true "Category Info"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), c.Param("familyID"), req, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID"
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/categories/{categoryID} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("categoryID"), req, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param familyID path string true "Family ID"
// @Param categoryID path string true "Category ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/categories/{categoryID} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("categoryID"), callerID, callerRole); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
