package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is an aggregate of spend or income for a single category.
type CategoryTotal struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlyTotal is an aggregate for a single calendar month.
type MonthlyTotal struct {
	Month        time.Time       `json:"month"` // First day of the month
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
}

// CategoryTotalRow is a per-currency aggregate as read from storage, before
// conversion into the display currency.
type CategoryTotalRow struct {
	CategoryID   string
	CategoryName string
	CurrencyCode string
	Total        decimal.Decimal
}

// MonthlyTotalRow is a per-currency monthly aggregate as read from storage.
type MonthlyTotalRow struct {
	Month        time.Time
	CurrencyCode string
	TotalExpense decimal.Decimal
	TotalIncome  decimal.Decimal
}

// DashboardSummary is the aggregate view rendered on the family dashboard.
// All amounts are expressed in DisplayCurrencyCode.
type DashboardSummary struct {
	FamilyID            string          `json:"familyID"`
	DisplayCurrencyCode string          `json:"displayCurrencyCode"`
	TotalExpense        decimal.Decimal `json:"totalExpense"`
	TotalIncome         decimal.Decimal `json:"totalIncome"`
	Balance             decimal.Decimal `json:"balance"`
	ExpenseByCategory   []CategoryTotal `json:"expenseByCategory"`
	IncomeByCategory    []CategoryTotal `json:"incomeByCategory"`
	ByMonth             []MonthlyTotal  `json:"byMonth"`
}
