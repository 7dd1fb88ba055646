package services_test

import (
	"context"
	"testing"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/core/services"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockFamilyRepository is a mock type for the FamilyRepositoryFacade interface
type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Family), args.Error(1)
}

func (m *MockFamilyRepository) FindFamilyByInviteCode(ctx context.Context, inviteCode string) (*domain.Family, error) {
	args := m.Called(ctx, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Family), args.Error(1)
}

func (m *MockFamilyRepository) ListFamiliesForUser(ctx context.Context, userID string) ([]domain.Family, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Family), args.Error(1)
}

func (m *MockFamilyRepository) FindMembership(ctx context.Context, familyID, userID string) (*domain.UserFamily, error) {
	args := m.Called(ctx, familyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserFamily), args.Error(1)
}

func (m *MockFamilyRepository) ListMembers(ctx context.Context, familyID string) ([]domain.UserFamily, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserFamily), args.Error(1)
}

func (m *MockFamilyRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockFamilyRepository) UpdateFamily(ctx context.Context, family domain.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockFamilyRepository) AddMember(ctx context.Context, membership domain.UserFamily) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockFamilyRepository) UpdateMemberRole(ctx context.Context, familyID, userID string, role domain.UserFamilyRole) error {
	args := m.Called(ctx, familyID, userID, role)
	return args.Error(0)
}

// MockCurrencyReader is a mock type for the CurrencyReader interface
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite Setup ---

type FamilyServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockFamilyRepository
	mockCurrency *MockCurrencyReader
	service      portssvc.FamilySvcFacade
	ctx          context.Context
}

func (suite *FamilyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFamilyRepository)
	suite.mockCurrency = new(MockCurrencyReader)
	suite.service = services.NewFamilyService(suite.mockRepo, suite.mockCurrency)
	suite.ctx = context.Background()
}

// --- Test Cases ---

func (suite *FamilyServiceTestSuite) TestCreateFamily_CreatorBecomesAdmin() {
	var savedMembership domain.UserFamily
	suite.mockRepo.On("SaveFamily", suite.ctx, mock.AnythingOfType("domain.Family")).Return(nil)
	suite.mockRepo.On("AddMember", suite.ctx, mock.AnythingOfType("domain.UserFamily")).Run(func(args mock.Arguments) {
		savedMembership = args.Get(1).(domain.UserFamily)
	}).Return(nil)

	family, err := suite.service.CreateFamily(suite.ctx, dto.CreateFamilyRequest{Name: "Smiths"}, "creator-1")

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), family.InviteCode)
	assert.True(suite.T(), family.IsActive)
	assert.Equal(suite.T(), domain.FamilyRoleAdmin, savedMembership.Role)
	assert.Equal(suite.T(), "creator-1", savedMembership.UserID)
}

func (suite *FamilyServiceTestSuite) TestCreateFamily_UnknownCurrencyRejected() {
	code := "XXX"
	suite.mockCurrency.On("FindCurrencyByCode", suite.ctx, "XXX").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateFamily(suite.ctx, dto.CreateFamilyRequest{Name: "Smiths", DefaultCurrencyCode: &code}, "creator-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFamily", mock.Anything, mock.Anything)
}

func (suite *FamilyServiceTestSuite) TestCreateFamily_RegistryCurrencyAcceptedWithoutDBRow() {
	code := "NPR"
	suite.mockCurrency.On("FindCurrencyByCode", suite.ctx, "NPR").Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveFamily", suite.ctx, mock.AnythingOfType("domain.Family")).Return(nil)
	suite.mockRepo.On("AddMember", suite.ctx, mock.AnythingOfType("domain.UserFamily")).Return(nil)

	family, err := suite.service.CreateFamily(suite.ctx, dto.CreateFamilyRequest{Name: "Smiths", DefaultCurrencyCode: &code}, "creator-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "NPR", *family.DefaultCurrencyCode)
}

func (suite *FamilyServiceTestSuite) TestJoinFamily_InvalidCode() {
	suite.mockRepo.On("FindFamilyByInviteCode", suite.ctx, "badcode").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.JoinFamily(suite.ctx, "badcode", "u-1", "Alice")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *FamilyServiceTestSuite) TestJoinFamily_AlreadyMember() {
	family := &domain.Family{FamilyID: "f-1", IsActive: true}
	membership := &domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleMember}
	suite.mockRepo.On("FindFamilyByInviteCode", suite.ctx, "code").Return(family, nil)
	suite.mockRepo.On("FindMembership", suite.ctx, "f-1", "u-1").Return(membership, nil)

	_, err := suite.service.JoinFamily(suite.ctx, "code", "u-1", "Alice")

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *FamilyServiceTestSuite) TestJoinFamily_RemovedMemberRejoins() {
	family := &domain.Family{FamilyID: "f-1", IsActive: true}
	membership := &domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleRemoved}
	suite.mockRepo.On("FindFamilyByInviteCode", suite.ctx, "code").Return(family, nil)
	suite.mockRepo.On("FindMembership", suite.ctx, "f-1", "u-1").Return(membership, nil)
	suite.mockRepo.On("UpdateMemberRole", suite.ctx, "f-1", "u-1", domain.FamilyRoleMember).Return(nil)

	got, err := suite.service.JoinFamily(suite.ctx, "code", "u-1", "Alice")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "f-1", got.FamilyID)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddMember", mock.Anything, mock.Anything)
}

func (suite *FamilyServiceTestSuite) TestJoinFamily_InactiveFamily() {
	family := &domain.Family{FamilyID: "f-1", IsActive: false}
	suite.mockRepo.On("FindFamilyByInviteCode", suite.ctx, "code").Return(family, nil)

	_, err := suite.service.JoinFamily(suite.ctx, "code", "u-1", "Alice")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *FamilyServiceTestSuite) TestAuthorizeMember_RemovedMemberForbidden() {
	membership := &domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleRemoved}
	suite.mockRepo.On("FindMembership", suite.ctx, "f-1", "u-1").Return(membership, nil)

	_, err := suite.service.AuthorizeMember(suite.ctx, "f-1", "u-1", domain.FamilyRoleReadOnly)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *FamilyServiceTestSuite) TestAuthorizeMember_ReadOnlyCannotWrite() {
	membership := &domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleReadOnly}
	suite.mockRepo.On("FindMembership", suite.ctx, "f-1", "u-1").Return(membership, nil)

	_, err := suite.service.AuthorizeMember(suite.ctx, "f-1", "u-1", domain.FamilyRoleMember)
	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)

	got, err := suite.service.AuthorizeMember(suite.ctx, "f-1", "u-1", domain.FamilyRoleReadOnly)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.FamilyRoleReadOnly, got.Role)
}

func (suite *FamilyServiceTestSuite) TestUpdateMemberRole_LastAdminCannotDemoteSelf() {
	adminMembership := &domain.UserFamily{UserID: "admin-1", FamilyID: "f-1", Role: domain.FamilyRoleAdmin}
	suite.mockRepo.On("FindMembership", suite.ctx, "f-1", "admin-1").Return(adminMembership, nil)
	suite.mockRepo.On("ListMembers", suite.ctx, "f-1").Return([]domain.UserFamily{
		*adminMembership,
		{UserID: "u-2", FamilyID: "f-1", Role: domain.FamilyRoleMember},
	}, nil)

	err := suite.service.UpdateMemberRole(suite.ctx, "f-1", "admin-1", domain.FamilyRoleMember, "admin-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateMemberRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FamilyServiceTestSuite) TestUpdateMemberRole_NonAdminForbidden() {
	membership := &domain.UserFamily{UserID: "u-1", FamilyID: "f-1", Role: domain.FamilyRoleMember}
	suite.mockRepo.On("FindMembership", suite.ctx, "f-1", "u-1").Return(membership, nil)

	err := suite.service.UpdateMemberRole(suite.ctx, "f-1", "u-2", domain.FamilyRoleReadOnly, "u-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *FamilyServiceTestSuite) TestRegenerateInviteCode_ReplacesCode() {
	adminMembership := &domain.UserFamily{UserID: "admin-1", FamilyID: "f-1", Role: domain.FamilyRoleAdmin}
	family := &domain.Family{FamilyID: "f-1", InviteCode: "oldcode", IsActive: true}
	suite.mockRepo.On("FindMembership", suite.ctx, "f-1", "admin-1").Return(adminMembership, nil)
	suite.mockRepo.On("FindFamilyByID", suite.ctx, "f-1").Return(family, nil)
	suite.mockRepo.On("UpdateFamily", suite.ctx, mock.AnythingOfType("domain.Family")).Return(nil)

	got, err := suite.service.RegenerateInviteCode(suite.ctx, "f-1", "admin-1")

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "oldcode", got.InviteCode)
	assert.NotEmpty(suite.T(), got.InviteCode)
}

func TestFamilyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FamilyServiceTestSuite))
}
