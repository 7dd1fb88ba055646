package domain

// Currency represents a supported currency persisted in the database.
// Display metadata (separators, symbol placement) for rendering lives in the
// static registry in internal/currency; this row is the admin-managed source
// of which currencies may be attached to expenses and income.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // Decimal digits (0 for JPY)
	AuditFields
}
