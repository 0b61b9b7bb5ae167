package moderation

// ValidateDescriptionInput contains the description to validate
type ValidateDescriptionInput struct {
	// Description is the raw event description, HTML allowed
	Description string
}

// ValidateDescriptionOutput is the moderation verdict
type ValidateDescriptionOutput struct {
	// IsEventRelated reports whether the text plausibly describes an event
	IsEventRelated bool

	// Confidence is the verdict strength in [0, 1]
	Confidence float64

	// Reason is a short human-readable explanation
	Reason string
}
