package services

import (
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/platform/config"
	"github.com/famled/family_finance_app/internal/ratesource"
)

// NewServiceContainer wires the service layer. The returned converter is
// shared by the services and the handlers so every conversion sees the same
// rate cache. Rates come from the configured HTTP endpoint when set,
// otherwise from the exchange_rates table.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, *currency.Converter) {
	var rateSource currency.Source
	if cfg.ExchangeRateURL != "" {
		rateSource = ratesource.NewHTTPSource(cfg.ExchangeRateURL, nil)
	} else {
		rateSource = ratesource.NewDBSource(repos.ExchangeRateRepo)
	}
	rateCache := currency.NewRateCache(rateSource, currency.DefaultFreshness)
	converter := currency.NewConverter(rateCache)

	userSvc := NewUserService(repos.UserRepo)
	familySvc := NewFamilyService(repos.FamilyRepo, repos.CurrencyRepo)

	container := &portssvc.ServiceContainer{
		User:         userSvc,
		Token:        NewTokenService(cfg, userSvc),
		GoogleOAuth:  NewGoogleOAuthService(cfg),
		Family:       familySvc,
		Category:     NewCategoryService(repos.CategoryRepo, familySvc),
		Expense:      NewExpenseService(repos.ExpenseRepo, repos.CategoryRepo, repos.CurrencyRepo, familySvc),
		Income:       NewIncomeService(repos.IncomeRepo, repos.CategoryRepo, repos.CurrencyRepo, familySvc),
		Currency:     NewCurrencyService(repos.CurrencyRepo),
		ExchangeRate: NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, rateCache),
		Reporting:    NewReportingService(repos.ReportingRepo, repos.FamilyRepo, familySvc, converter),
	}
	return container, converter
}
