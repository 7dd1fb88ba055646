package services

// ServiceContainer aggregates the service facades for handler wiring.
type ServiceContainer struct {
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
	Family       FamilySvcFacade
	Category     CategorySvcFacade
	Expense      ExpenseSvcFacade
	Income       IncomeSvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Reporting    ReportingSvcFacade
}
