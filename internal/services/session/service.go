package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/organizerhq/backoffice/internal/models"
	storerepo "github.com/organizerhq/backoffice/internal/repositories/session"
)

// Config holds configuration for the session service
type Config struct {
	// Store is the persistent session repository
	Store storerepo.Repository

	// Refresher exchanges refresh tokens for new access tokens
	Refresher TokenRefresher

	// OnLogout runs after every logout, e.g. to send the UI back to the
	// login screen. Optional.
	OnLogout func()
}

// service implements the Service interface
type service struct {
	store     storerepo.Repository
	refresher TokenRefresher
	onLogout  func()

	mu      sync.RWMutex
	current *models.Session
}

// New creates a session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Store == nil {
		return nil, ErrNilStore
	}

	if cfg.Refresher == nil {
		return nil, ErrNilRefresher
	}

	return &service{
		store:     cfg.Store,
		refresher: cfg.Refresher,
		onLogout:  cfg.OnLogout,
	}, nil
}

// Restore loads the persisted session into memory
func (s *service) Restore(ctx context.Context) error {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.Valid() {
		s.current = sess
	} else {
		s.current = nil
	}

	return nil
}

// Login installs the verified payload: store first, memory second
func (s *service) Login(ctx context.Context, input *LoginInput) error {
	if input == nil {
		return ErrNilInput
	}

	sess := &models.Session{
		Organizer: input.Organizer,
		Tokens:    input.Tokens,
	}
	if !sess.Valid() {
		return ErrIncompleteLogin
	}

	if err := s.store.Save(ctx, &storerepo.SaveInput{
		Organizer: input.Organizer,
		Tokens:    input.Tokens,
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	return nil
}

// Logout clears both copies of the session and fires the logout hook
func (s *service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if s.onLogout != nil {
		s.onLogout()
	}

	return nil
}

// CurrentOrganizer returns the authenticated organizer, nil when Anonymous
func (s *service) CurrentOrganizer() *models.Organizer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}

	return s.current.Organizer
}

// GetAccessToken returns the current access token, empty when Anonymous
func (s *service) GetAccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}

	return s.current.Tokens.Access
}

// GetRefreshToken returns the current refresh token, empty when Anonymous
func (s *service) GetRefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}

	return s.current.Tokens.Refresh
}

// AccessTokenExpiresAt reads the expiry claim without verifying the
// signature; the token stays opaque for every other purpose
func (s *service) AccessTokenExpiresAt() time.Time {
	access := s.GetAccessToken()
	if access == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}

// UpdateProfile merges the provided fields into the organizer's profile
// and re-persists the full session
func (s *service) UpdateProfile(ctx context.Context, input *UpdateProfileInput) error {
	if input == nil {
		return ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNotAuthenticated
	}

	organizer := *s.current.Organizer
	profile := organizer.Profile

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Description != nil {
		profile.Description = *input.Description
	}
	if input.LogoURL != nil {
		profile.LogoURL = *input.LogoURL
	}
	if input.ContactPhone != nil {
		profile.ContactPhone = *input.ContactPhone
	}
	if input.WebsiteURL != nil {
		profile.WebsiteURL = *input.WebsiteURL
	}
	if input.SocialMediaLinks != nil {
		profile.SocialMediaLinks = input.SocialMediaLinks
	}
	if input.VerificationStatus != nil {
		profile.VerificationStatus = *input.VerificationStatus
	}
	if input.VerificationID != nil {
		profile.VerificationID = *input.VerificationID
	}

	organizer.Profile = profile

	if err := s.store.Save(ctx, &storerepo.SaveInput{
		Organizer: &organizer,
		Tokens:    s.current.Tokens,
	}); err != nil {
		return err
	}

	s.current = &models.Session{
		Organizer: &organizer,
		Tokens:    s.current.Tokens,
	}

	return nil
}

// RefreshAccessToken exchanges the refresh token for a new access token.
// Only the access token changes; a failure is logged and returned, and
// the session is left as it was.
func (s *service) RefreshAccessToken(ctx context.Context) error {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return ErrNotAuthenticated
	}

	access, err := s.refresher.RefreshAccessToken(ctx, current.Tokens.Refresh)
	if err != nil {
		log.Printf("Error refreshing access token: %v", err)
		return err
	}

	tokens := &models.Tokens{
		Access:  access,
		Refresh: current.Tokens.Refresh,
	}

	if err := s.store.Save(ctx, &storerepo.SaveInput{
		Organizer: current.Organizer,
		Tokens:    tokens,
	}); err != nil {
		return err
	}

	s.mu.Lock()
	if s.current != nil {
		s.current = &models.Session{
			Organizer: s.current.Organizer,
			Tokens:    tokens,
		}
	}
	s.mu.Unlock()

	return nil
}
