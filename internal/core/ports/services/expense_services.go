package services

import (
	"context"

	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/rbac"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves one expense; read_own vs read_all applies.
	GetExpenseByID(ctx context.Context, expenseID, callerUserID string, callerRole rbac.Role) (*domain.Expense, error)

	// ListExpenses retrieves a page of a family's expenses. Callers without
	// expense:read_all are restricted to their own entries.
	ListExpenses(ctx context.Context, familyID string, params portsrepo.ListEntriesParams, callerUserID string, callerRole rbac.Role) ([]domain.Expense, string, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense records an expense; requires expense:create and family
	// membership with write access.
	CreateExpense(ctx context.Context, familyID string, req dto.CreateExpenseRequest, creatorUserID string, creatorRole rbac.Role) (*domain.Expense, error)

	// UpdateExpense updates an expense; update_own vs update_all applies.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string, updaterRole rbac.Role) (*domain.Expense, error)

	// DeleteExpense removes an expense; delete_own vs delete_all applies.
	DeleteExpense(ctx context.Context, expenseID, deleterUserID string, deleterRole rbac.Role) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
