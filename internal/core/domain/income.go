package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents a single income entry recorded by a user.
type Income struct {
	IncomeID     string          `json:"incomeID"` // Primary Key (UUID)
	FamilyID     string          `json:"familyID"`
	UserID       string          `json:"userID"`
	CategoryID   string          `json:"categoryID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Date         time.Time       `json:"date"`
	Source       string          `json:"source,omitempty"` // e.g. "Salary", "Freelance"
	Notes        string          `json:"notes,omitempty"`
	AuditFields
}
