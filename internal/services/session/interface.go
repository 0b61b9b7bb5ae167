package session

import (
	"context"
	"time"

	"github.com/organizerhq/backoffice/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_refresher.go github.com/organizerhq/backoffice/internal/services/session TokenRefresher

// Service is the single source of truth for the authenticated session.
// It moves between two states: Anonymous (no organizer, no tokens) and
// Authenticated (both present). The store is authoritative; the
// in-memory copy is a cache kept in sync on every mutation.
type Service interface {
	// Restore loads the persisted session at startup. A missing or
	// corrupt session leaves the service Anonymous.
	Restore(ctx context.Context) error

	// Login installs the organizer and token pair from a successful
	// login or signup-verification response. No network call is made.
	Login(ctx context.Context, input *LoginInput) error

	// Logout clears the persisted and in-memory session and fires the
	// logout hook. Safe to call when already Anonymous.
	Logout(ctx context.Context) error

	// CurrentOrganizer returns the authenticated organizer, nil when Anonymous
	CurrentOrganizer() *models.Organizer

	// GetAccessToken returns the current access token, empty when Anonymous
	GetAccessToken() string

	// GetRefreshToken returns the current refresh token, empty when Anonymous
	GetRefreshToken() string

	// AccessTokenExpiresAt reports the access token's expiry claim.
	// Zero when Anonymous or when the token is not a parseable JWT.
	AccessTokenExpiresAt() time.Time

	// UpdateProfile shallow-merges the provided fields into the
	// organizer's profile and re-persists the session. The backend call
	// is the caller's responsibility beforehand.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) error

	// RefreshAccessToken exchanges the refresh token for a new access
	// token, updating memory and store. The refresh token is preserved.
	// A failure is returned to the caller without forcing logout.
	RefreshAccessToken(ctx context.Context) error
}

// TokenRefresher exchanges a refresh token for a new access token. The
// API client satisfies this.
type TokenRefresher interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
}
