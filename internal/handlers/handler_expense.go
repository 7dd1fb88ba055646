package handlers

import (
	"net/http"
	"strconv"
	"time"

	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

const dateQueryLayout = "2006-01-02"

// ExpenseHandler handles expense requests. Amounts are echoed back in their
// original currency plus a display string converted to the family's default
// currency.
type ExpenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	familyService  portssvc.FamilyReaderSvc
	converter      *currency.Converter
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(es portssvc.ExpenseSvcFacade, fs portssvc.FamilyReaderSvc, converter *currency.Converter) *ExpenseHandler {
	return &ExpenseHandler{expenseService: es, familyService: fs, converter: converter}
}

// registerExpenseRoutes sets up expense routes under /families/:familyID.
func registerExpenseRoutes(families *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, familyService portssvc.FamilyReaderSvc, converter *currency.Converter) {
	h := NewExpenseHandler(expenseService, familyService, converter)

	expenses := families.Group("/:familyID/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:expenseID", h.GetExpense)
		expenses.PUT("/:expenseID", h.UpdateExpense)
		expenses.DELETE("/:expenseID", h.DeleteExpense)
	}
}

// displayCurrency resolves the currency entries are displayed in: the
// family's default when set, otherwise the system default.
func displayCurrency(c *gin.Context, familyService portssvc.FamilyReaderSvc, familyID, callerID string) string {
	family, err := familyService.GetFamilyByID(c.Request.Context(), familyID, callerID)
	if err != nil || family.DefaultCurrencyCode == nil || *family.DefaultCurrencyCode == "" {
		return currency.DefaultCode
	}
	return *family.DefaultCurrencyCode
}

// parseListEntriesParams reads the shared paging and date filter query
// parameters for expense and income listings.
func parseListEntriesParams(c *gin.Context) (portsrepo.ListEntriesParams, error) {
	var params portsrepo.ListEntriesParams
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	params.NextToken = c.Query("nextToken")

	if raw := c.Query("fromDate"); raw != "" {
		from, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			return params, err
		}
		params.FromDate = &from
	}
	if raw := c.Query("toDate"); raw != "" {
		to, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			return params, err
		}
		params.ToDate = &to
	}
	return params, nil
}

// CreateExpense godoc
// @Summary Record expense
// @Description Records an expense in any supported currency against an EXPENSE category of the family.
// @Tags expenses
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID"
// @Param expense body dto.CreateExpenseRequest true "Expense Info"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}
	familyID := c.Param("familyID")

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), familyID, req, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, familyID, callerID)
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense, h.converter.FormatWithIndicator(expense.Amount, expense.CurrencyCode, display)))
}

// ListExpenses godoc
// @Summary List family expenses
// @Description Lists expenses newest first with cursor pagination. Callers without read-all access only see their own entries.
// @Tags expenses
// @Produce json
// @Param familyID path string true "Family ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from a previous page"
// @Param fromDate query string false "Earliest date (YYYY-MM-DD)"
// @Param toDate query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
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

	expenses, nextToken, err := h.expenseService.ListExpenses(c.Request.Context(), familyID, params, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, familyID, callerID)
	resp := dto.ListExpensesResponse{
		Expenses:  make([]dto.ExpenseResponse, len(expenses)),
		NextToken: nextToken,
	}
	for i := range expenses {
		e := &expenses[i]
		resp.Expenses[i] = dto.ToExpenseResponse(e, h.converter.FormatWithIndicator(e.Amount, e.CurrencyCode, display))
	}
	c.JSON(http.StatusOK, resp)
}

// GetExpense godoc
// @Summary Get expense by ID
// @Tags expenses
// @Produce json
// @Param familyID path string true "Family ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/expenses/{expenseID} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("expenseID"), callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, expense.FamilyID, callerID)
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, h.converter.FormatWithIndicator(expense.Amount, expense.CurrencyCode, display)))
}

// UpdateExpense godoc
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID"
// @Param expenseID path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/expenses/{expenseID} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("expenseID"), req, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	display := displayCurrency(c, h.familyService, expense.FamilyID, callerID)
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, h.converter.FormatWithIndicator(expense.Amount, expense.CurrencyCode, display)))
}

// DeleteExpense godoc
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Param familyID path string true "Family ID"
// @Param expenseID path string true "Expense ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /families/{familyID}/expenses/{expenseID} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("expenseID"), callerID, callerRole); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
