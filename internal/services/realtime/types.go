package realtime

import "github.com/organizerhq/backoffice/internal/models"

// SetCurrentChannelInput contains parameters for rebinding the conversation
type SetCurrentChannelInput struct {
	// Channel is the conversation to join; empty unbinds only
	Channel string
}

// SendMessageInput contains parameters for publishing one chat envelope
type SendMessageInput struct {
	Text string

	// Image is an optional attachment URL
	Image string
}

// FetchHistoryInput contains parameters for fetching recent envelopes
type FetchHistoryInput struct {
	// Count caps the number of envelopes returned; zero means the default
	Count int
}

// FetchHistoryOutput contains the fetched envelopes, oldest first
type FetchHistoryOutput struct {
	Messages []*models.Message
}
