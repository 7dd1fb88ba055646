package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/famled/family_finance_app/internal/apperrors"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/platform/config"
	"github.com/famled/family_finance_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// oauthStateBytes sizes the CSRF state string (16 bytes -> 32 hex chars).
const oauthStateBytes = 16

// GoogleOAuthService verifies Google identities for sign-in, either from an
// ID token presented directly or via the authorization code redirect flow.
type GoogleOAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new GoogleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &GoogleOAuthService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*GoogleOAuthService)(nil)

// GenerateStateString creates a CSRF token for the redirect flow.
func (s *GoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(oauthStateBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the consent page URL carrying the state token.
func (s *GoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// VerifyAuthCode exchanges an authorization code for tokens and validates the
// ID token embedded in the response.
func (s *GoogleOAuthService) VerifyAuthCode(ctx context.Context, code string) (string, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		return "", "", fmt.Errorf("%w: invalid google authorization code", apperrors.ErrUnauthorized)
	}

	idTokenStr, ok := token.Extra("id_token").(string)
	if !ok || idTokenStr == "" {
		return "", "", fmt.Errorf("%w: google response missing id token", apperrors.ErrUnauthorized)
	}

	return s.VerifyIDToken(ctx, idTokenStr)
}

// VerifyIDToken validates the token signature and audience, returning the
// verified email and display name.
func (s *GoogleOAuthService) VerifyIDToken(ctx context.Context, idTokenStr string) (string, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.clientID == "" {
		return "", "", fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrValidation)
	}

	payload, err := idtoken.Validate(ctx, idTokenStr, s.clientID)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		return "", "", fmt.Errorf("%w: invalid google token", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", "", fmt.Errorf("%w: google token missing email claim", apperrors.ErrUnauthorized)
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		logger.Warn("Google account email not verified", slog.String("email", email))
		return "", "", fmt.Errorf("%w: google email not verified", apperrors.ErrUnauthorized)
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	return email, name, nil
}
