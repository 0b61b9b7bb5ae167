package session

import "github.com/organizerhq/backoffice/internal/models"

// LoginInput carries the verified payload returned by the backend's
// login or email-verification endpoint
type LoginInput struct {
	Organizer *models.Organizer
	Tokens    *models.Tokens
}

// UpdateProfileInput is a partial profile update; nil fields are left
// unchanged
type UpdateProfileInput struct {
	Name               *string
	Description        *string
	LogoURL            *string
	ContactPhone       *string
	WebsiteURL         *string
	SocialMediaLinks   *models.SocialMediaLinks
	VerificationStatus *models.VerificationStatus
	VerificationID     *string
}
