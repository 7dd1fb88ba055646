package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/core/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReportingRepository is a mock type for the ReportingRepositoryFacade interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, familyID string, categoryType domain.CategoryType, from, to time.Time) ([]domain.CategoryTotalRow, error) {
	args := m.Called(ctx, familyID, categoryType, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotalRow), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTotals(ctx context.Context, familyID string, from, to time.Time) ([]domain.MonthlyTotalRow, error) {
	args := m.Called(ctx, familyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotalRow), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockReportingRepository
	mockFamily *MockFamilyRepository
	mockAuth   *MockFamilyAuthorizer
	service    portssvc.ReportingSvcFacade
	ctx        context.Context
	from, to   time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockFamily = new(MockFamilyRepository)
	suite.mockAuth = new(MockFamilyAuthorizer)
	source := &fixedRateSource{pairs: []currency.RatePair{
		{FromCurrency: "NPR", ToCurrency: "USD", Rate: decimal.NewFromFloat(0.0075)},
	}}
	converter := currency.NewConverter(currency.NewRateCache(source, currency.DefaultFreshness))
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockFamily, suite.mockAuth, converter)
	suite.ctx = context.Background()
	suite.from = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) family(displayCode string) *domain.Family {
	return &domain.Family{FamilyID: "f-1", DefaultCurrencyCode: &displayCode, IsActive: true}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGetDashboardSummary_MergesCurrencyBuckets() {
	suite.mockAuth.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleReadOnly).Return(&domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleMember}, nil)
	suite.mockFamily.On("FindFamilyByID", suite.ctx, "f-1").Return(suite.family("USD"), nil)

	// Groceries were paid in both USD and NPR; the dashboard folds them
	// into a single USD bucket.
	suite.mockRepo.On("GetCategoryTotals", suite.ctx, "f-1", domain.CategoryTypeExpense, suite.from, suite.to).Return([]domain.CategoryTotalRow{
		{CategoryID: "cat-1", CategoryName: "Groceries", CurrencyCode: "USD", Total: decimal.NewFromInt(100)},
		{CategoryID: "cat-1", CategoryName: "Groceries", CurrencyCode: "NPR", Total: decimal.NewFromInt(10000)},
	}, nil)
	suite.mockRepo.On("GetCategoryTotals", suite.ctx, "f-1", domain.CategoryTypeIncome, suite.from, suite.to).Return([]domain.CategoryTotalRow{
		{CategoryID: "cat-2", CategoryName: "Salary", CurrencyCode: "USD", Total: decimal.NewFromInt(500)},
	}, nil)
	suite.mockRepo.On("GetMonthlyTotals", suite.ctx, "f-1", suite.from, suite.to).Return([]domain.MonthlyTotalRow{}, nil)

	summary, err := suite.service.GetDashboardSummary(suite.ctx, "f-1", suite.from, suite.to, "u-1", rbac.RoleUser)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "USD", summary.DisplayCurrencyCode)
	suite.Require().Len(summary.ExpenseByCategory, 1)
	// 100 USD + 10000 NPR * 0.0075 = 175 USD
	assert.True(suite.T(), summary.ExpenseByCategory[0].Total.Equal(decimal.NewFromInt(175)), "got %s", summary.ExpenseByCategory[0].Total)
	assert.True(suite.T(), summary.TotalIncome.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), summary.Balance.Equal(decimal.NewFromInt(325)))
}

func (suite *ReportingServiceTestSuite) TestGetDashboardSummary_MonthlySeriesSorted() {
	suite.mockAuth.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleReadOnly).Return(&domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleMember}, nil)
	suite.mockFamily.On("FindFamilyByID", suite.ctx, "f-1").Return(suite.family("USD"), nil)
	suite.mockRepo.On("GetCategoryTotals", suite.ctx, "f-1", mock.Anything, suite.from, suite.to).Return([]domain.CategoryTotalRow{}, nil)

	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("GetMonthlyTotals", suite.ctx, "f-1", suite.from, suite.to).Return([]domain.MonthlyTotalRow{
		{Month: feb, CurrencyCode: "USD", TotalExpense: decimal.NewFromInt(30), TotalIncome: decimal.NewFromInt(90)},
		{Month: jan, CurrencyCode: "USD", TotalExpense: decimal.NewFromInt(20), TotalIncome: decimal.NewFromInt(80)},
	}, nil)

	summary, err := suite.service.GetDashboardSummary(suite.ctx, "f-1", suite.from, suite.to, "u-1", rbac.RoleUser)

	assert.NoError(suite.T(), err)
	suite.Require().Len(summary.ByMonth, 2)
	assert.Equal(suite.T(), jan, summary.ByMonth[0].Month)
	assert.Equal(suite.T(), feb, summary.ByMonth[1].Month)
}

func (suite *ReportingServiceTestSuite) TestGetDashboardSummary_NonMemberForbidden() {
	suite.mockAuth.On("AuthorizeMember", suite.ctx, "f-1", "outsider", domain.FamilyRoleReadOnly).Return(nil, apperrors.ErrForbidden)

	_, err := suite.service.GetDashboardSummary(suite.ctx, "f-1", suite.from, suite.to, "outsider", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *ReportingServiceTestSuite) TestGetDashboardSummary_InvertedRangeRejected() {
	suite.mockAuth.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleReadOnly).Return(&domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleMember}, nil)

	_, err := suite.service.GetDashboardSummary(suite.ctx, "f-1", suite.to, suite.from, "u-1", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
