package dto

import (
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
)

// DashboardRequest selects the reporting window; zero values default to the
// last 12 months.
type DashboardRequest struct {
	FromDate *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"toDate" time_format:"2006-01-02"`
}

// CategoryTotalResponse is one category slice of the dashboard, with the
// total pre-formatted in the display currency.
type CategoryTotalResponse struct {
	CategoryID     string `json:"categoryID"`
	CategoryName   string `json:"categoryName"`
	Total          string `json:"total"`          // decimal string
	FormattedTotal string `json:"formattedTotal"` // e.g. "$1,234.56"
}

// MonthlyTotalResponse is one month of the dashboard series.
type MonthlyTotalResponse struct {
	Month        string `json:"month"` // "2026-01"
	TotalExpense string `json:"totalExpense"`
	TotalIncome  string `json:"totalIncome"`
}

// DashboardResponse is the full dashboard payload in the display currency.
type DashboardResponse struct {
	FamilyID            string                  `json:"familyID"`
	DisplayCurrencyCode string                  `json:"displayCurrencyCode"`
	TotalExpense        string                  `json:"totalExpense"`
	TotalIncome         string                  `json:"totalIncome"`
	Balance             string                  `json:"balance"`
	FormattedBalance    string                  `json:"formattedBalance"`
	ExpenseByCategory   []CategoryTotalResponse `json:"expenseByCategory"`
	IncomeByCategory    []CategoryTotalResponse `json:"incomeByCategory"`
	ByMonth             []MonthlyTotalResponse  `json:"byMonth"`
}

// ToDashboardResponse converts a domain.DashboardSummary to the API shape.
// formatTotal renders an amount in the summary's display currency.
func ToDashboardResponse(s *domain.DashboardSummary, formatTotal func(domain.CategoryTotal) string, formatBalance string) DashboardResponse {
	resp := DashboardResponse{
		FamilyID:            s.FamilyID,
		DisplayCurrencyCode: s.DisplayCurrencyCode,
		TotalExpense:        s.TotalExpense.String(),
		TotalIncome:         s.TotalIncome.String(),
		Balance:             s.Balance.String(),
		FormattedBalance:    formatBalance,
		ExpenseByCategory:   make([]CategoryTotalResponse, len(s.ExpenseByCategory)),
		IncomeByCategory:    make([]CategoryTotalResponse, len(s.IncomeByCategory)),
		ByMonth:             make([]MonthlyTotalResponse, len(s.ByMonth)),
	}
	for i, ct := range s.ExpenseByCategory {
		resp.ExpenseByCategory[i] = CategoryTotalResponse{
			CategoryID:     ct.CategoryID,
			CategoryName:   ct.CategoryName,
			Total:          ct.Total.String(),
			FormattedTotal: formatTotal(ct),
		}
	}
	for i, ct := range s.IncomeByCategory {
		resp.IncomeByCategory[i] = CategoryTotalResponse{
			CategoryID:     ct.CategoryID,
			CategoryName:   ct.CategoryName,
			Total:          ct.Total.String(),
			FormattedTotal: formatTotal(ct),
		}
	}
	for i, mt := range s.ByMonth {
		resp.ByMonth[i] = MonthlyTotalResponse{
			Month:        mt.Month.Format("2006-01"),
			TotalExpense: mt.TotalExpense.String(),
			TotalIncome:  mt.TotalIncome.String(),
		}
	}
	return resp
}
