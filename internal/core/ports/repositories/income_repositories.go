package repositories

import (
	"context"

	"github.com/famled/family_finance_app/internal/core/domain"
)

// IncomeReader defines read operations for income data
type IncomeReader interface {
	// FindIncomeByID retrieves an income entry by ID.
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)

	// ListIncomeByFamily retrieves a page of a family's income entries ordered
	// by date descending, returning the next page token (empty when exhausted).
	ListIncomeByFamily(ctx context.Context, familyID string, params ListEntriesParams) ([]domain.Income, string, error)
}

// IncomeWriter defines write operations for income data
type IncomeWriter interface {
	// SaveIncome persists a new income entry.
	SaveIncome(ctx context.Context, income domain.Income) error

	// UpdateIncome persists changes to an existing income entry.
	UpdateIncome(ctx context.Context, income domain.Income) error

	// DeleteIncome removes an income entry.
	DeleteIncome(ctx context.Context, incomeID string) error
}

// IncomeRepositoryFacade combines all income-related repository interfaces
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
}
