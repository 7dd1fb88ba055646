package handlers

import (
	"net/http"

	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// IncomeHandler handles income requests, mirroring the expense handler.
type IncomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
	familyService portssvc.FamilyReaderSvc
	converter     *currency.Converter
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(is portssvc.IncomeSvcFacade, fs portssvc.FamilyReaderSvc, converter *currency.Converter) *IncomeHandler {
	return &IncomeHandler{incomeService: is, familyService: fs, converter: converter}
}

// registerIncomeRoutes sets up income routes under /families/:familyID.
func registerIncomeRoutes(families *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade, familyService portssvc.FamilyReaderSvc, converter *currency.Converter) {
	h := NewIncomeHandler(incomeService, familyService, converter)

	income := families.Group("/:familyID/income")
	{
		income.POST("", h.CreateIncome)
		income.GET("", h.ListIncome)
		income.GET("/:incomeID", h.GetIncome)
		income.PUT("/:incomeID", h.UpdateIncome)
		income.DELETE("/:incomeID", h.DeleteIncome)
	}
}

// CreateIncome godoc
// @Summary Record income
// @Description Records an income entry in any supported currency against an INCOME category of the family.
// @Tags income
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID"
// @Param income body dto.CreateIncomeRequest true "Income Info"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/income [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}
	familyID := c.Param("familyID")

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.incomeService.CreateIncome(c.Request.Context(), familyID, req, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, familyID, callerID)
	c.JSON(http.StatusCreated, dto.ToIncomeResponse(entry, h.converter.FormatWithIndicator(entry.Amount, entry.CurrencyCode, display)))
}

// ListIncome godoc
// @Summary List family income
// @Description Lists income entries newest first with cursor pagination. Callers without read-all access only see their own entries.
// @Tags income
// @Produce json
// @Param familyID path string true "Family ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from a previous page"
// @Param fromDate query string false "Earliest date (YYYY-MM-DD)"
// @Param toDate query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListIncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/income [get]
func (h *IncomeHandler) ListIncome(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}
	familyID := c.Param("familyID")

	params, err := parseListEntriesParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date filter, expected YYYY-MM-DD"})
		return
	}

	entries, nextToken, err := h.incomeService.ListIncome(c.Request.Context(), familyID, params, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, familyID, callerID)
	resp := dto.ListIncomeResponse{
		Income:    make([]dto.IncomeResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		in := &entries[i]
		resp.Income[i] = dto.ToIncomeResponse(in, h.converter.FormatWithIndicator(in.Amount, in.CurrencyCode, display))
	}
	c.JSON(http.StatusOK, resp)
}

// GetIncome godoc
// @Summary Get income entry by ID
// @Tags income
// @Produce json
// @Param familyID path string true "Family ID"
// @Param incomeID path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/income/{incomeID} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.incomeService.GetIncomeByID(c.Request.Context(), c.Param("incomeID"), callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, entry.FamilyID, callerID)
	c.JSON(http.StatusOK, dto.ToIncomeResponse(entry, h.converter.FormatWithIndicator(entry.Amount, entry.CurrencyCode, display)))
}

// UpdateIncome godoc
// @Summary Update income entry
// @Tags income
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID"
// @Param incomeID path string true "Income ID"
// @Param income body dto.UpdateIncomeRequest true "Fields to update"
// @Success 200 {object} dto.IncomeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/income/{incomeID} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.incomeService.UpdateIncome(c.Request.Context(), c.Param("incomeID"), req, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, entry.FamilyID, callerID)
	c.JSON(http.StatusOK, dto.ToIncomeResponse(entry, h.converter.FormatWithIndicator(entry.Amount, entry.CurrencyCode, display)))
}

// DeleteIncome godoc
// @Summary Delete income entry
// @Tags income
// @Produce json
// @Param familyID path string true "Family ID"
// @Param incomeID path string true "Income ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/income/{incomeID} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.incomeService.DeleteIncome(c.Request.Context(), c.Param("incomeID"), callerID, callerRole); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
