package moderation

// ModerationError is a custom error type for moderation errors
type ModerationError string

// Error implements the error interface
func (e ModerationError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig ModerationError = "config cannot be nil"
	ErrNilInput  ModerationError = "input cannot be nil"
)
