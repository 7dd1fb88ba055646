package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/core/services"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockExpenseRepository is a mock type for the ExpenseRepositoryFacade interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByFamily(ctx context.Context, familyID string, params portsrepo.ListEntriesParams) ([]domain.Expense, string, error) {
	args := m.Called(ctx, familyID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.String(1), args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// MockCategoryReader is a mock type for the CategoryReader interface
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategoriesByFamily(ctx context.Context, familyID string, categoryType domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, familyID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// MockFamilyAuthorizer is a mock type for the FamilyAuthorizerSvc interface
type MockFamilyAuthorizer struct {
	mock.Mock
}

func (m *MockFamilyAuthorizer) AuthorizeMember(ctx context.Context, familyID, userID string, minRole domain.UserFamilyRole) (*domain.UserFamily, error) {
	args := m.Called(ctx, familyID, userID, minRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserFamily), args.Error(1)
}

// --- Test Suite Setup ---

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockExpenseRepository
	mockCategories *MockCategoryReader
	mockCurrencies *MockCurrencyReader
	mockFamily     *MockFamilyAuthorizer
	service        portssvc.ExpenseSvcFacade
	ctx            context.Context
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.mockCategories = new(MockCategoryReader)
	suite.mockCurrencies = new(MockCurrencyReader)
	suite.mockFamily = new(MockFamilyAuthorizer)
	suite.service = services.NewExpenseService(suite.mockRepo, suite.mockCategories, suite.mockCurrencies, suite.mockFamily)
	suite.ctx = context.Background()
}

func (suite *ExpenseServiceTestSuite) membership(userID string, role domain.UserFamilyRole) *domain.UserFamily {
	return &domain.UserFamily{UserID: userID, FamilyID: "f-1", Role: role}
}

func (suite *ExpenseServiceTestSuite) validCreateRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		CategoryID:   "cat-1",
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
		Date:         time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleMember).Return(suite.membership("u-1", domain.FamilyRoleMember), nil)
	suite.mockCategories.On("FindCategoryByID", suite.ctx, "cat-1").Return(&domain.Category{CategoryID: "cat-1", FamilyID: "f-1", Type: domain.CategoryTypeExpense}, nil)
	suite.mockCurrencies.On("FindCurrencyByCode", suite.ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockRepo.On("SaveExpense", suite.ctx, mock.AnythingOfType("domain.Expense")).Return(nil)

	expense, err := suite.service.CreateExpense(suite.ctx, "f-1", suite.validCreateRequest(), "u-1", rbac.RoleUser)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "u-1", expense.UserID)
	assert.Equal(suite.T(), "f-1", expense.FamilyID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonMemberForbidden() {
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "outsider", domain.FamilyRoleMember).Return(nil, apperrors.ErrForbidden)

	_, err := suite.service.CreateExpense(suite.ctx, "f-1", suite.validCreateRequest(), "outsider", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_WrongCategoryTypeRejected() {
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleMember).Return(suite.membership("u-1", domain.FamilyRoleMember), nil)
	suite.mockCategories.On("FindCategoryByID", suite.ctx, "cat-1").Return(&domain.Category{CategoryID: "cat-1", FamilyID: "f-1", Type: domain.CategoryTypeIncome}, nil)

	_, err := suite.service.CreateExpense(suite.ctx, "f-1", suite.validCreateRequest(), "u-1", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NegativeAmountRejected() {
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleMember).Return(suite.membership("u-1", domain.FamilyRoleMember), nil)

	req := suite.validCreateRequest()
	req.Amount = decimal.NewFromInt(-5)
	_, err := suite.service.CreateExpense(suite.ctx, "f-1", req, "u-1", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_OwnerReadsOwn() {
	expense := &domain.Expense{ExpenseID: "e-1", FamilyID: "f-1", UserID: "u-1"}
	suite.mockRepo.On("FindExpenseByID", suite.ctx, "e-1").Return(expense, nil)
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleReadOnly).Return(suite.membership("u-1", domain.FamilyRoleMember), nil)

	got, err := suite.service.GetExpenseByID(suite.ctx, "e-1", "u-1", rbac.RoleUser)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "e-1", got.ExpenseID)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_UserCannotReadOthers() {
	expense := &domain.Expense{ExpenseID: "e-1", FamilyID: "f-1", UserID: "owner-1"}
	suite.mockRepo.On("FindExpenseByID", suite.ctx, "e-1").Return(expense, nil)
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-2", domain.FamilyRoleReadOnly).Return(suite.membership("u-2", domain.FamilyRoleMember), nil)

	_, err := suite.service.GetExpenseByID(suite.ctx, "e-1", "u-2", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_AdminReadsAll() {
	expense := &domain.Expense{ExpenseID: "e-1", FamilyID: "f-1", UserID: "owner-1"}
	suite.mockRepo.On("FindExpenseByID", suite.ctx, "e-1").Return(expense, nil)
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "admin-1", domain.FamilyRoleReadOnly).Return(suite.membership("admin-1", domain.FamilyRoleAdmin), nil)

	got, err := suite.service.GetExpenseByID(suite.ctx, "e-1", "admin-1", rbac.RoleAdmin)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "e-1", got.ExpenseID)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_UserScopedToOwnEntries() {
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleReadOnly).Return(suite.membership("u-1", domain.FamilyRoleMember), nil)

	var captured portsrepo.ListEntriesParams
	suite.mockRepo.On("ListExpensesByFamily", suite.ctx, "f-1", mock.AnythingOfType("repositories.ListEntriesParams")).Run(func(args mock.Arguments) {
		captured = args.Get(2).(portsrepo.ListEntriesParams)
	}).Return([]domain.Expense{}, "", nil)

	_, _, err := suite.service.ListExpenses(suite.ctx, "f-1", portsrepo.ListEntriesParams{Limit: 10}, "u-1", rbac.RoleUser)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "u-1", captured.UserID)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_AdminSeesWholeFamily() {
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "admin-1", domain.FamilyRoleReadOnly).Return(suite.membership("admin-1", domain.FamilyRoleAdmin), nil)

	var captured portsrepo.ListEntriesParams
	suite.mockRepo.On("ListExpensesByFamily", suite.ctx, "f-1", mock.AnythingOfType("repositories.ListEntriesParams")).Run(func(args mock.Arguments) {
		captured = args.Get(2).(portsrepo.ListEntriesParams)
	}).Return([]domain.Expense{}, "", nil)

	_, _, err := suite.service.ListExpenses(suite.ctx, "f-1", portsrepo.ListEntriesParams{Limit: 10}, "admin-1", rbac.RoleAdmin)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), captured.UserID)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_UserCannotUpdateOthers() {
	expense := &domain.Expense{ExpenseID: "e-1", FamilyID: "f-1", UserID: "owner-1", Amount: decimal.NewFromInt(10)}
	suite.mockRepo.On("FindExpenseByID", suite.ctx, "e-1").Return(expense, nil)
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-2", domain.FamilyRoleMember).Return(suite.membership("u-2", domain.FamilyRoleMember), nil)

	notes := "edited"
	_, err := suite.service.UpdateExpense(suite.ctx, "e-1", dto.UpdateExpenseRequest{Notes: &notes}, "u-2", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_AdminUpdatesOthers() {
	expense := &domain.Expense{ExpenseID: "e-1", FamilyID: "f-1", UserID: "owner-1", Amount: decimal.NewFromInt(10)}
	suite.mockRepo.On("FindExpenseByID", suite.ctx, "e-1").Return(expense, nil)
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "admin-1", domain.FamilyRoleMember).Return(suite.membership("admin-1", domain.FamilyRoleAdmin), nil)
	suite.mockRepo.On("UpdateExpense", suite.ctx, mock.AnythingOfType("domain.Expense")).Return(nil)

	notes := "edited"
	got, err := suite.service.UpdateExpense(suite.ctx, "e-1", dto.UpdateExpenseRequest{Notes: &notes}, "admin-1", rbac.RoleAdmin)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "edited", got.Notes)
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_OwnerDeletesOwn() {
	expense := &domain.Expense{ExpenseID: "e-1", FamilyID: "f-1", UserID: "u-1"}
	suite.mockRepo.On("FindExpenseByID", suite.ctx, "e-1").Return(expense, nil)
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-1", domain.FamilyRoleMember).Return(suite.membership("u-1", domain.FamilyRoleMember), nil)
	suite.mockRepo.On("DeleteExpense", suite.ctx, "e-1").Return(nil)

	err := suite.service.DeleteExpense(suite.ctx, "e-1", "u-1", rbac.RoleUser)

	assert.NoError(suite.T(), err)
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_UserCannotDeleteOthers() {
	expense := &domain.Expense{ExpenseID: "e-1", FamilyID: "f-1", UserID: "owner-1"}
	suite.mockRepo.On("FindExpenseByID", suite.ctx, "e-1").Return(expense, nil)
	suite.mockFamily.On("AuthorizeMember", suite.ctx, "f-1", "u-2", domain.FamilyRoleMember).Return(suite.membership("u-2", domain.FamilyRoleMember), nil)

	err := suite.service.DeleteExpense(suite.ctx, "e-1", "u-2", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteExpense", mock.Anything, mock.Anything)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
