package dto

import (
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record an income entry.
type CreateIncomeRequest struct {
	CategoryID   string          `json:"categoryID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Date         time.Time       `json:"date" binding:"required"`
	Source       string          `json:"source,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateIncomeRequest defines the updatable income fields.
type UpdateIncomeRequest struct {
	CategoryID   *string          `json:"categoryID,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,len=3,uppercase"`
	Date         *time.Time       `json:"date,omitempty"`
	Source       *string          `json:"source,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// IncomeResponse defines the data returned for an income entry.
type IncomeResponse struct {
	IncomeID      string          `json:"incomeID"`
	FamilyID      string          `json:"familyID"`
	UserID        string          `json:"userID"`
	CategoryID    string          `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	DisplayAmount string          `json:"displayAmount,omitempty"`
	Date          time.Time       `json:"date"`
	Source        string          `json:"source,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListIncomeResponse is a paginated income listing.
type ListIncomeResponse struct {
	Income    []IncomeResponse `json:"income"`
	NextToken string           `json:"nextToken,omitempty"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse DTO
func ToIncomeResponse(in *domain.Income, displayAmount string) IncomeResponse {
	return IncomeResponse{
		IncomeID:      in.IncomeID,
		FamilyID:      in.FamilyID,
		UserID:        in.UserID,
		CategoryID:    in.CategoryID,
		Amount:        in.Amount,
		CurrencyCode:  in.CurrencyCode,
		DisplayAmount: displayAmount,
		Date:          in.Date,
		Source:        in.Source,
		Notes:         in.Notes,
		CreatedAt:     in.CreatedAt,
	}
}
