package services

import (
	"context"
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/rbac"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID, enforcing the role-tier view boundary.
	GetUserByID(ctx context.Context, userID string, accessorRole rbac.Role) (*domain.User, error)

	// ListUsers retrieves users; requires the user:read permission.
	ListUsers(ctx context.Context, accessorRole rbac.Role, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser self-registers a USER-role account.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// CreateUser creates a user with an explicit role; the creator's role
	// must be whitelisted to assign it.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string, creatorRole rbac.Role) (*domain.User, error)

	// UpdateUser updates profile fields; the manage-user boundary applies
	// when updating another user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string, updaterRole rbac.Role) (*domain.User, error)

	// UpdateUserRole changes a user's global role; SUPERUSER only.
	UpdateUserRole(ctx context.Context, userID string, req dto.UpdateUserRoleRequest, updaterUserID string, updaterRole rbac.Role) (*domain.User, error)

	// DeleteUser soft-deletes a user; requires user:delete and the
	// manage-user boundary.
	DeleteUser(ctx context.Context, userID string, deleterUserID string, deleterRole rbac.Role) error
}

// UserAuthSvc defines the operations the authentication flow needs.
type UserAuthSvc interface {
	// AuthenticateUser verifies username/password credentials.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// GetOrCreateGoogleUser finds or provisions a USER-role account for a
	// verified Google identity.
	GetOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error)

	// GetUserForRefresh fetches a user including refresh token state.
	GetUserForRefresh(ctx context.Context, userID string) (*domain.User, error)

	// StoreRefreshToken persists the hash and expiry of a refresh token.
	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error

	// ClearRefreshToken invalidates any stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
