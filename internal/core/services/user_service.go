package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/famled/family_finance_app/internal/utils"
	"github.com/google/uuid"
)

// UserService handles business logic related to users.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &UserService{userRepo: ur}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// RegisterUser self-registers a USER-role account.
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	return s.createUser(ctx, req.Username, req.Password, req.Name, rbac.RoleUser, "")
}

// CreateUser creates a user with an explicit role. The creator's role must be
// whitelisted to assign the requested role.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string, creatorRole rbac.Role) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(creatorRole, rbac.ResourceUser, rbac.ActionCreate) {
		return nil, fmt.Errorf("%w: role %s cannot create users", apperrors.ErrForbidden, creatorRole)
	}
	if !rbac.CanCreateUserWithRole(creatorRole, req.Role) {
		logger.Warn("Role creation denied by whitelist", slog.String("creator_role", string(creatorRole)), slog.String("target_role", string(req.Role)))
		return nil, fmt.Errorf("%w: role %s cannot create users with role %s", apperrors.ErrForbidden, creatorRole, req.Role)
	}

	return s.createUser(ctx, req.Username, req.Password, req.Name, req.Role, creatorUserID)
}

func (s *UserService) createUser(ctx context.Context, username, password, name string, role rbac.Role, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check username uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, username)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	if creatorUserID == "" {
		creatorUserID = newUserID // self registration
	}
	user := domain.User{
		UserID:       newUserID,
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user in repository", slog.String("error", err.Error()), slog.String("username", username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// GetUserByID retrieves a user, enforcing the role-tier view boundary: a
// caller may only view users at their own tier or below, except that any
// user may always be looked up by a SUPERUSER.
func (s *UserService) GetUserByID(ctx context.Context, userID string, accessorRole rbac.Role) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !rbac.CanAccessUserData(accessorRole, user.Role) {
		return nil, fmt.Errorf("%w: role %s cannot view users with role %s", apperrors.ErrForbidden, accessorRole, user.Role)
	}
	return user, nil
}

// ListUsers retrieves users; requires the user:read permission.
func (s *UserService) ListUsers(ctx context.Context, accessorRole rbac.Role, limit, offset int) ([]domain.User, error) {
	if !rbac.HasPermission(accessorRole, rbac.ResourceUser, rbac.ActionRead) {
		return nil, fmt.Errorf("%w: role %s cannot list users", apperrors.ErrForbidden, accessorRole)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser updates profile fields. Updating another user requires the
// user:update permission and the manage-user boundary.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string, updaterRole rbac.Role) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if userID != updaterUserID {
		if !rbac.HasPermission(updaterRole, rbac.ResourceUser, rbac.ActionUpdate) {
			return nil, fmt.Errorf("%w: role %s cannot update other users", apperrors.ErrForbidden, updaterRole)
		}
		if !rbac.CanManageUser(updaterRole, user.Role) {
			return nil, fmt.Errorf("%w: role %s cannot manage users with role %s", apperrors.ErrForbidden, updaterRole, user.Role)
		}
	}

	changed := false
	if req.Name != nil && *req.Name != user.Name {
		user.Name = *req.Name
		changed = true
	}
	if !changed {
		return user, nil
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("User updated", slog.String("user_id", userID))
	return user, nil
}

// UpdateUserRole changes a user's global role; requires user:assign, which
// only SUPERUSER holds. SUPERUSER accounts themselves cannot be reassigned.
func (s *UserService) UpdateUserRole(ctx context.Context, userID string, req dto.UpdateUserRoleRequest, updaterUserID string, updaterRole rbac.Role) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rbac.HasPermission(updaterRole, rbac.ResourceUser, rbac.ActionAssign) {
		return nil, fmt.Errorf("%w: role %s cannot assign roles", apperrors.ErrForbidden, updaterRole)
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %s", apperrors.ErrValidation, req.Role)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !rbac.CanManageUser(updaterRole, user.Role) {
		return nil, fmt.Errorf("%w: role %s cannot manage users with role %s", apperrors.ErrForbidden, updaterRole, user.Role)
	}
	if user.Role == req.Role {
		return user, nil
	}

	if err := s.userRepo.UpdateUserRole(ctx, userID, req.Role, updaterUserID); err != nil {
		logger.Error("Failed to update user role", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	user.Role = req.Role
	logger.Info("User role updated", slog.String("user_id", userID), slog.String("new_role", string(req.Role)))
	return user, nil
}

// DeleteUser soft-deletes a user; requires user:delete and the manage-user
// boundary. Self deletion is always allowed.
func (s *UserService) DeleteUser(ctx context.Context, userID string, deleterUserID string, deleterRole rbac.Role) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID != deleterUserID {
		if !rbac.HasPermission(deleterRole, rbac.ResourceUser, rbac.ActionDelete) {
			return fmt.Errorf("%w: role %s cannot delete users", apperrors.ErrForbidden, deleterRole)
		}
		user, err := s.userRepo.FindUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
		if !rbac.CanManageUser(deleterRole, user.Role) {
			return fmt.Errorf("%w: role %s cannot manage users with role %s", apperrors.ErrForbidden, deleterRole, user.Role)
		}
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, deleterUserID, time.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to mark user deleted", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Info("User deleted", slog.String("user_id", userID), slog.String("deleted_by", deleterUserID))
	return nil
}

// AuthenticateUser verifies username/password credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password so usernames cannot be probed.
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to find user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return user, nil
}

// GetOrCreateGoogleUser finds or provisions a USER-role account for a
// verified Google identity. The email serves as the username.
func (s *UserService) GetOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up Google user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// No local password for federated accounts; a random secret keeps the
	// password column non-empty without ever matching a login attempt.
	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder secret: %w", err)
	}

	return s.createUser(ctx, email, randomSecret, name, rbac.RoleUser, "")
}

// GetUserForRefresh fetches a user including refresh token state.
func (s *UserService) GetUserForRefresh(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// StoreRefreshToken persists the hash and expiry of a refresh token.
func (s *UserService) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, &expiry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to store refresh token", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// ClearRefreshToken invalidates any stored refresh token.
func (s *UserService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to clear refresh token", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
