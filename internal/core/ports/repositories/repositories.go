package repositories

// RepositoryProvider aggregates the repository facades the service container
// needs, so wiring code passes one value instead of a parameter list.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	FamilyRepo       FamilyRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	IncomeRepo       IncomeRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ReportingRepo    ReportingRepositoryFacade
}
