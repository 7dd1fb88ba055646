package repositories

import (
	"context"
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
)

// ListEntriesParams carries filters and cursor pagination for expense and
// income listings. NextToken is an opaque cursor produced by a previous call.
type ListEntriesParams struct {
	Limit     int
	NextToken string
	UserID    string // Non-empty restricts to entries recorded by this user
	FromDate  *time.Time
	ToDate    *time.Time
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByFamily retrieves a page of a family's expenses ordered by
	// date descending, returning the next page token (empty when exhausted).
	ListExpensesByFamily(ctx context.Context, familyID string, params ListEntriesParams) ([]domain.Expense, string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense persists changes to an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
