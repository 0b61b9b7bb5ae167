package models

import (
	"encoding/json"
	"time"
)

// VerificationStatus represents an organizer's approval state for
// publishing public events
type VerificationStatus string

const (
	// VerificationStatusNone indicates the organizer never submitted documents
	VerificationStatusNone VerificationStatus = "none"

	// VerificationStatusPending indicates a submitted verification awaiting review
	VerificationStatusPending VerificationStatus = "pending"

	// VerificationStatusApproved indicates a verified organizer
	VerificationStatusApproved VerificationStatus = "approved"

	// VerificationStatusDenied indicates a rejected verification
	VerificationStatusDenied VerificationStatus = "denied"
)

// SocialMediaLinks holds the organizer's public social profiles
type SocialMediaLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile represents the public-facing organization profile attached to
// an organizer account
type Profile struct {
	// ID is the unique identifier of the profile
	ID int64 `json:"id"`

	// Name is the display name of the organization
	Name string `json:"name"`

	// Description is the free-form organization description
	Description string `json:"description,omitempty"`

	// LogoURL points at the uploaded organization logo
	LogoURL string `json:"logo_url,omitempty"`

	// ContactPhone is the public contact number
	ContactPhone string `json:"contact_phone,omitempty"`

	// WebsiteURL is the organization's website
	WebsiteURL string `json:"website_url,omitempty"`

	// SocialMediaLinks holds the public social profiles, when provided
	SocialMediaLinks *SocialMediaLinks `json:"social_media_links,omitempty"`

	// VerificationStatus is the organizer's approval state
	VerificationStatus VerificationStatus `json:"verification_status,omitempty"`

	// VerificationID references the submitted identity document
	VerificationID string `json:"verification_id,omitempty"`

	// IsFollowing reports whether the requesting user follows this profile
	IsFollowing bool `json:"is_following,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// User is the id of the account that owns this profile
	User int64 `json:"user"`
}

// Organizer represents the authenticated account in the back office:
// an event-hosting organization
type Organizer struct {
	// ID is the numeric account id
	ID int64 `json:"id"`

	// Email is the login email address
	Email string `json:"email"`

	// Role is the account role assigned by the platform
	Role string `json:"role"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`

	// IsActive reports whether the account is enabled
	IsActive bool `json:"is_active"`

	DateJoined time.Time `json:"date_joined"`

	// Profile is the nested organization profile
	Profile Profile `json:"profile"`
}

// Tokens is the bearer credential pair issued at login. Both values are
// opaque to the client; the access token is short-lived, the refresh
// token outlives it and is replaced only by a fresh login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is the persisted authentication state: the organizer record
// and its token pair. The two are valid only together; a session missing
// either half is treated as logged out.
type Session struct {
	Organizer *Organizer `json:"organizer"`
	Tokens    *Tokens    `json:"tokens"`
}

// Valid reports whether the session holds both halves of the pair.
func (s *Session) Valid() bool {
	return s != nil && s.Organizer != nil && s.Tokens != nil &&
		s.Tokens.Access != "" && s.Tokens.Refresh != ""
}

// User represents any platform account referenced by API payloads, such
// as a rating author. The profile may arrive as a full object or as a
// plain string depending on the endpoint.
type User struct {
	ID         int64           `json:"id"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	FirstName  string          `json:"first_name,omitempty"`
	LastName   string          `json:"last_name,omitempty"`
	Username   string          `json:"username,omitempty"`
	IsActive   bool            `json:"is_active"`
	DateJoined time.Time       `json:"date_joined"`
	Profile    json.RawMessage `json:"profile,omitempty"`
}
