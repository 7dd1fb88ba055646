package pgsql

import (
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		FamilyRepo:       newPgxFamilyRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		IncomeRepo:       newPgxIncomeRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
