package repositories

import (
	"context"
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
)

// ReportingReader defines aggregate read operations for dashboards. Rows are
// grouped per currency so the service layer can convert each bucket into the
// family's display currency before summing.
type ReportingReader interface {
	// GetCategoryTotals aggregates expense or income totals per category and
	// currency for a family in a date range.
	GetCategoryTotals(ctx context.Context, familyID string, categoryType domain.CategoryType, from, to time.Time) ([]domain.CategoryTotalRow, error)

	// GetMonthlyTotals aggregates expense and income per month and currency
	// for a family in a date range.
	GetMonthlyTotals(ctx context.Context, familyID string, from, to time.Time) ([]domain.MonthlyTotalRow, error)
}

// ReportingRepositoryFacade combines all reporting repository interfaces
type ReportingRepositoryFacade interface {
	ReportingReader
}
