package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single spend entry recorded by a user.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	FamilyID     string          `json:"familyID"`  // FK -> families.family_id
	UserID       string          `json:"userID"`    // FK -> users.user_id (who spent)
	CategoryID   string          `json:"categoryID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"` // Currency the amount was recorded in
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes,omitempty"`
	AuditFields
}
