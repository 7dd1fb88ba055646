package domain

// CategoryType distinguishes expense categories from income categories.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// Category groups expenses or income entries within a family.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (UUID)
	FamilyID   string       `json:"familyID"`   // FK -> families.family_id
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Icon       string       `json:"icon,omitempty"`
	AuditFields
}
