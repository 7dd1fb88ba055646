package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/platform/config"
	"github.com/famled/family_finance_app/internal/utils"
)

// refreshTokenBytes is the entropy of an opaque refresh token.
const refreshTokenBytes = 32

// TokenService issues JWT access tokens and opaque refresh tokens.
type TokenService struct {
	cfg     *config.Config
	userSvc portssvc.UserAuthSvc
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, userSvc portssvc.UserAuthSvc) portssvc.TokenSvcFacade {
	return &TokenService{cfg: cfg, userSvc: userSvc}
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

// GenerateAccessToken creates a signed JWT carrying the user's ID and role.
func (s *TokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates an opaque refresh token, persists its hash and
// expiry, and returns the plaintext token to be set as an HTTP-only cookie.
func (s *TokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	token, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userSvc.StoreRefreshToken(ctx, user.UserID, s.hashToken(token), expiry); err != nil {
		return "", time.Time{}, err
	}

	return token, expiry, nil
}

// ValidateRefreshToken checks a presented refresh token against the user's
// stored hash and expiry, returning the user on success.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.GetUserForRefresh(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, fmt.Errorf("%w: no refresh token on record", apperrors.ErrUnauthorized)
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		logger.Warn("Refresh token expired", slog.String("user_id", userID))
		return nil, fmt.Errorf("%w: refresh token expired", apperrors.ErrUnauthorized)
	}
	if !hmac.Equal([]byte(s.hashToken(refreshToken)), []byte(user.RefreshTokenHash)) {
		logger.Warn("Refresh token mismatch", slog.String("user_id", userID))
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}

	return user, nil
}

// hashToken produces a keyed hash of a refresh token; only this value is
// ever stored.
func (s *TokenService) hashToken(token string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.RefreshTokenSecret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
