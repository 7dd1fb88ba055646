package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/core/services"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/famled/family_finance_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, userID string, role rbac.Role, updaterUserID string) error {
	args := m.Called(ctx, userID, role, updaterUserID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deleterUserID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deleterUserID, deletedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
	suite.ctx = context.Background()
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser_AlwaysGetsUserRole() {
	req := dto.RegisterUserRequest{Username: "alice", Password: "password123", Name: "Alice"}

	suite.mockRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(nil)

	user, err := suite.service.RegisterUser(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), rbac.RoleUser, user.Role)
	assert.NotEmpty(suite.T(), user.UserID)
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateUsername() {
	existing := &domain.User{UserID: uuid.NewString(), Username: "alice"}
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "alice").Return(existing, nil)

	_, err := suite.service.RegisterUser(suite.ctx, dto.RegisterUserRequest{Username: "alice", Password: "password123", Name: "Alice"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_AdminCanCreateUser() {
	req := dto.CreateUserRequest{Username: "bob", Password: "password123", Name: "Bob", Role: rbac.RoleUser}

	suite.mockRepo.On("FindUserByUsername", suite.ctx, "bob").Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(nil)

	user, err := suite.service.CreateUser(suite.ctx, req, uuid.NewString(), rbac.RoleAdmin)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), rbac.RoleUser, user.Role)
}

func (suite *UserServiceTestSuite) TestCreateUser_AdminCannotCreateAdmin() {
	req := dto.CreateUserRequest{Username: "bob", Password: "password123", Name: "Bob", Role: rbac.RoleAdmin}

	_, err := suite.service.CreateUser(suite.ctx, req, uuid.NewString(), rbac.RoleAdmin)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UserCannotCreateAnyone() {
	req := dto.CreateUserRequest{Username: "bob", Password: "password123", Name: "Bob", Role: rbac.RoleUser}

	_, err := suite.service.CreateUser(suite.ctx, req, uuid.NewString(), rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: hash, Role: rbac.RoleUser}
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "alice").Return(user, nil)

	got, err := suite.service.AuthenticateUser(suite.ctx, "alice", "correct-horse")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "alice").Return(user, nil)

	_, err = suite.service.AuthenticateUser(suite.ctx, "alice", "wrong")

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsernameSameError() {
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "nobody").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.AuthenticateUser(suite.ctx, "nobody", "whatever")

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestGetUserByID_UserCannotViewAdmin() {
	admin := &domain.User{UserID: "admin-1", Role: rbac.RoleAdmin}
	suite.mockRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin, nil)

	_, err := suite.service.GetUserByID(suite.ctx, "admin-1", rbac.RoleUser)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestGetUserByID_SuperuserViewsAnyone() {
	admin := &domain.User{UserID: "admin-1", Role: rbac.RoleAdmin}
	suite.mockRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin, nil)

	got, err := suite.service.GetUserByID(suite.ctx, "admin-1", rbac.RoleSuperuser)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "admin-1", got.UserID)
}

func (suite *UserServiceTestSuite) TestListUsers_RequiresUserRead() {
	_, err := suite.service.ListUsers(suite.ctx, rbac.RoleUser, 10, 0)
	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)

	suite.mockRepo.On("ListUsers", suite.ctx, 10, 0).Return([]domain.User{}, nil)
	_, err = suite.service.ListUsers(suite.ctx, rbac.RoleAdmin, 10, 0)
	assert.NoError(suite.T(), err)
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_RequiresSuperuser() {
	req := dto.UpdateUserRoleRequest{Role: rbac.RoleAdmin}

	_, err := suite.service.UpdateUserRole(suite.ctx, "target-1", req, "admin-1", rbac.RoleAdmin)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_SuperuserPromotesUser() {
	target := &domain.User{UserID: "target-1", Role: rbac.RoleUser}
	suite.mockRepo.On("FindUserByID", suite.ctx, "target-1").Return(target, nil)
	suite.mockRepo.On("UpdateUserRole", suite.ctx, "target-1", rbac.RoleAdmin, "su-1").Return(nil)

	got, err := suite.service.UpdateUserRole(suite.ctx, "target-1", dto.UpdateUserRoleRequest{Role: rbac.RoleAdmin}, "su-1", rbac.RoleSuperuser)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), rbac.RoleAdmin, got.Role)
}

func (suite *UserServiceTestSuite) TestDeleteUser_SelfAlwaysAllowed() {
	suite.mockRepo.On("MarkUserDeleted", suite.ctx, "u-1", "u-1", mock.AnythingOfType("time.Time")).Return(nil)

	err := suite.service.DeleteUser(suite.ctx, "u-1", "u-1", rbac.RoleUser)

	assert.NoError(suite.T(), err)
}

func (suite *UserServiceTestSuite) TestDeleteUser_AdminCannotDeleteOthers() {
	err := suite.service.DeleteUser(suite.ctx, "other-1", "admin-1", rbac.RoleAdmin)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestGetOrCreateGoogleUser_ProvisionsNewAccount() {
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(nil)

	user, err := suite.service.GetOrCreateGoogleUser(suite.ctx, "alice@example.com", "Alice")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), rbac.RoleUser, user.Role)
	assert.Equal(suite.T(), "alice@example.com", user.Username)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
