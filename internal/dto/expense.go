package dto

import (
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	CategoryID   string          `json:"categoryID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Date         time.Time       `json:"date" binding:"required"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateExpenseRequest defines the updatable expense fields.
type UpdateExpenseRequest struct {
	CategoryID   *string          `json:"categoryID,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,len=3,uppercase"`
	Date         *time.Time       `json:"date,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// ExpenseResponse defines the data returned for an expense. DisplayAmount is
// the amount converted to the family's display currency, formatted with a
// "(check rate)" marker when the conversion looks implausible.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	FamilyID      string          `json:"familyID"`
	UserID        string          `json:"userID"`
	CategoryID    string          `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	DisplayAmount string          `json:"displayAmount,omitempty"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListExpensesResponse is a paginated expense listing.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense, displayAmount string) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		FamilyID:      e.FamilyID,
		UserID:        e.UserID,
		CategoryID:    e.CategoryID,
		Amount:        e.Amount,
		CurrencyCode:  e.CurrencyCode,
		DisplayAmount: displayAmount,
		Date:          e.Date,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}
