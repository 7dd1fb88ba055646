package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for dashboard aggregates.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

// GetCategoryTotals aggregates expense or income totals per category and
// currency for a family in a date range. Rows stay split per currency so the
// service layer can convert each bucket before summing.
func (r *ReportingRepository) GetCategoryTotals(ctx context.Context, familyID string, categoryType domain.CategoryType, from, to time.Time) ([]domain.CategoryTotalRow, error) {
	table := "expenses"
	if categoryType == domain.CategoryTypeIncome {
		table = "income"
	}
	query := fmt.Sprintf(`
		SELECT c.category_id, c.name, e.currency_code, COALESCE(SUM(e.amount), 0)
		FROM %s e
		JOIN categories c ON c.category_id = e.category_id
		WHERE e.family_id = $1 AND e.date >= $2 AND e.date <= $3
		GROUP BY c.category_id, c.name, e.currency_code
		ORDER BY c.name, e.currency_code;
	`, table)

	rows, err := r.Pool.Query(ctx, query, familyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals for family %s: %w", familyID, err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryTotalRow, error) {
		var t domain.CategoryTotalRow
		err := row.Scan(&t.CategoryID, &t.CategoryName, &t.CurrencyCode, &t.Total)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan category totals: %w", err)
	}
	return totals, nil
}

// GetMonthlyTotals aggregates expense and income per month and currency for
// a family in a date range.
func (r *ReportingRepository) GetMonthlyTotals(ctx context.Context, familyID string, from, to time.Time) ([]domain.MonthlyTotalRow, error) {
	query := `
		SELECT month, currency_code, SUM(total_expense), SUM(total_income)
		FROM (
			SELECT date_trunc('month', date) AS month, currency_code, amount AS total_expense, 0::numeric AS total_income
			FROM expenses
			WHERE family_id = $1 AND date >= $2 AND date <= $3
			UNION ALL
			SELECT date_trunc('month', date) AS month, currency_code, 0::numeric AS total_expense, amount AS total_income
			FROM income
			WHERE family_id = $1 AND date >= $2 AND date <= $3
		) entries
		GROUP BY month, currency_code
		ORDER BY month, currency_code;
	`

	rows, err := r.Pool.Query(ctx, query, familyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals for family %s: %w", familyID, err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MonthlyTotalRow, error) {
		var t domain.MonthlyTotalRow
		err := row.Scan(&t.Month, &t.CurrencyCode, &t.TotalExpense, &t.TotalIncome)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan monthly totals: %w", err)
	}
	return totals, nil
}
