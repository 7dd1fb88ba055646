package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/shopspring/decimal"
)

// defaultReportingWindow is used when the caller supplies no date range.
const defaultReportingWindow = 365 * 24 * time.Hour

// ReportingService aggregates expenses and income into dashboard summaries,
// converting every bucket into the family's display currency through the
// shared rate cache.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	familyRepo    portsrepo.FamilyReader
	familySvc     portssvc.FamilyAuthorizerSvc
	converter     *currency.Converter
}

// NewReportingService creates a new ReportingService.
func NewReportingService(rr portsrepo.ReportingRepositoryFacade, fr portsrepo.FamilyReader, fs portssvc.FamilyAuthorizerSvc, conv *currency.Converter) portssvc.ReportingSvcFacade {
	return &ReportingService{
		reportingRepo: rr,
		familyRepo:    fr,
		familySvc:     fs,
		converter:     conv,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// GetDashboardSummary aggregates a family's expenses and income over the
// window, converted into the family's display currency via cached rates.
func (s *ReportingService) GetDashboardSummary(ctx context.Context, familyID string, from, to time.Time, callerUserID string, callerRole rbac.Role) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(callerRole, rbac.ResourceDashboard, rbac.ActionRead) {
		return nil, fmt.Errorf("%w: role %s cannot view dashboards", apperrors.ErrForbidden, callerRole)
	}
	if _, err := s.familySvc.AuthorizeMember(ctx, familyID, callerUserID, domain.FamilyRoleReadOnly); err != nil {
		return nil, err
	}

	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.Add(-defaultReportingWindow)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: fromDate is after toDate", apperrors.ErrValidation)
	}

	family, err := s.familyRepo.FindFamilyByID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find family: %w", err)
	}
	displayCode := currency.DefaultCode
	if family.DefaultCurrencyCode != nil && *family.DefaultCurrencyCode != "" {
		displayCode = *family.DefaultCurrencyCode
	}

	expenseByCategory, err := s.categoryTotals(ctx, familyID, domain.CategoryTypeExpense, from, to, displayCode)
	if err != nil {
		return nil, err
	}
	incomeByCategory, err := s.categoryTotals(ctx, familyID, domain.CategoryTypeIncome, from, to, displayCode)
	if err != nil {
		return nil, err
	}

	monthlyRows, err := s.reportingRepo.GetMonthlyTotals(ctx, familyID, from, to)
	if err != nil {
		logger.Error("Failed to load monthly totals", slog.String("error", err.Error()), slog.String("family_id", familyID))
		return nil, fmt.Errorf("failed to load monthly totals: %w", err)
	}
	byMonth := s.mergeMonthlyRows(ctx, monthlyRows, displayCode)

	totalExpense := decimal.Zero
	for _, ct := range expenseByCategory {
		totalExpense = totalExpense.Add(ct.Total)
	}
	totalIncome := decimal.Zero
	for _, ct := range incomeByCategory {
		totalIncome = totalIncome.Add(ct.Total)
	}

	return &domain.DashboardSummary{
		FamilyID:            familyID,
		DisplayCurrencyCode: displayCode,
		TotalExpense:        totalExpense,
		TotalIncome:         totalIncome,
		Balance:             totalIncome.Sub(totalExpense),
		ExpenseByCategory:   expenseByCategory,
		IncomeByCategory:    incomeByCategory,
		ByMonth:             byMonth,
	}, nil
}

// categoryTotals loads per-currency category rows and folds them into one
// total per category in the display currency.
func (s *ReportingService) categoryTotals(ctx context.Context, familyID string, categoryType domain.CategoryType, from, to time.Time, displayCode string) ([]domain.CategoryTotal, error) {
	rows, err := s.reportingRepo.GetCategoryTotals(ctx, familyID, categoryType, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load category totals", slog.String("error", err.Error()), slog.String("family_id", familyID), slog.String("type", string(categoryType)))
		return nil, fmt.Errorf("failed to load category totals: %w", err)
	}

	totals := make(map[string]*domain.CategoryTotal)
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		converted := s.converter.Convert(ctx, row.Total, row.CurrencyCode, displayCode)
		ct, ok := totals[row.CategoryID]
		if !ok {
			totals[row.CategoryID] = &domain.CategoryTotal{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				Total:        converted,
			}
			order = append(order, row.CategoryID)
			continue
		}
		ct.Total = ct.Total.Add(converted)
	}

	result := make([]domain.CategoryTotal, 0, len(order))
	for _, id := range order {
		result = append(result, *totals[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result, nil
}

// mergeMonthlyRows folds per-currency month rows into one row per month in
// the display currency, sorted chronologically.
func (s *ReportingService) mergeMonthlyRows(ctx context.Context, rows []domain.MonthlyTotalRow, displayCode string) []domain.MonthlyTotal {
	byMonth := make(map[time.Time]*domain.MonthlyTotal)
	for _, row := range rows {
		mt, ok := byMonth[row.Month]
		if !ok {
			mt = &domain.MonthlyTotal{Month: row.Month, TotalExpense: decimal.Zero, TotalIncome: decimal.Zero}
			byMonth[row.Month] = mt
		}
		mt.TotalExpense = mt.TotalExpense.Add(s.converter.Convert(ctx, row.TotalExpense, row.CurrencyCode, displayCode))
		mt.TotalIncome = mt.TotalIncome.Add(s.converter.Convert(ctx, row.TotalIncome, row.CurrencyCode, displayCode))
	}

	result := make([]domain.MonthlyTotal, 0, len(byMonth))
	for _, mt := range byMonth {
		result = append(result, *mt)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})
	return result
}
