package services

import (
	"context"
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
)

// TokenSvcFacade handles JWT access tokens and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT carrying the user's ID and
	// role, returning the token and its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token and its expiry;
	// only a hash of it is ever persisted.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks a presented refresh token against the
	// user's stored hash and expiry, returning the user on success.
	ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error)
}

// GoogleOAuthSvcFacade verifies Google identities for sign-in, via either a
// directly presented ID token or the authorization code redirect flow.
type GoogleOAuthSvcFacade interface {
	// VerifyIDToken validates the token signature and audience, returning
	// the verified email and display name.
	VerifyIDToken(ctx context.Context, idToken string) (email, name string, err error)

	// GenerateStateString creates a CSRF token for the redirect flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the consent page URL carrying the state.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// VerifyAuthCode exchanges an authorization code and validates the ID
	// token in the response, returning the verified email and display name.
	VerifyAuthCode(ctx context.Context, code string) (email, name string, err error)
}
