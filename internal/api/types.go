package api

import "github.com/organizerhq/backoffice/internal/models"

// LoginInput contains the organizer's credentials
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterOrganizerInput contains the signup payload for a new
// organization account
type RegisterOrganizerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

// VerifyEmailInput carries the one-time code sent to a new account
type VerifyEmailInput struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResendOTPInput asks for a fresh one-time code
type ResendOTPInput struct {
	Email string `json:"email"`
}

// ResendOTPOutput is the backend's acknowledgement message
type ResendOTPOutput struct {
	Message string `json:"message"`
}

// RefreshTokenInput carries the refresh token to exchange
type RefreshTokenInput struct {
	Refresh string `json:"refresh"`
}

// RefreshTokenOutput holds the newly minted access token
type RefreshTokenOutput struct {
	Access string `json:"access"`
}

// ListOrganizerEventsInput selects an organizer's events
type ListOrganizerEventsInput struct {
	OrganizerID int64
}

// ListGroupsInput pages through the organization's chat groups
type ListGroupsInput struct {
	Page     int
	PageSize int
}

// UpdateProfileInput is the organizer profile payload for the
// back-office settings page. Fields are sent as-is; merging with the
// current profile is the caller's concern.
type UpdateProfileInput struct {
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	LogoURL          string                   `json:"logo_url"`
	ContactPhone     string                   `json:"contact_phone"`
	WebsiteURL       string                   `json:"website_url"`
	VerificationID   string                   `json:"verification_id,omitempty"`
	SocialMediaLinks *models.SocialMediaLinks `json:"social_media_links"`
}

// UpdateVerificationInput submits or withdraws an identity document for
// organizer verification
type UpdateVerificationInput struct {
	OrganizerID           int64  `json:"-"`
	IDDocumentURL         string `json:"id_document_url,omitempty"`
	VerificationAttempted bool   `json:"verification_attempted"`
}
