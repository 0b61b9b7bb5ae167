package models

// MessageUser identifies the author of a chat message
type MessageUser struct {
	// ID is the author's subscriber identity on the broker
	ID string `json:"id"`

	// Name is the display name shown in the transcript
	Name string `json:"name"`
}

// Message is the envelope published to a group's chat channel. Delivery
// is fire-and-forget; ordering and fan-out belong to the broker.
type Message struct {
	// Text is the message body
	Text string `json:"text"`

	// Image optionally carries an uploaded media URL
	Image string `json:"image,omitempty"`

	// CreatedAt is the client-side send time in milliseconds since epoch
	CreatedAt int64 `json:"createdAt"`

	// User is the author
	User MessageUser `json:"user"`
}
