package session

// StoreError is a custom error type for session store errors
type StoreError string

// Error implements the error interface
func (e StoreError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig    StoreError = "config cannot be nil"
	ErrEmptyDir     StoreError = "state directory cannot be empty"
	ErrNilInput     StoreError = "input cannot be nil"
	ErrPartialInput StoreError = "organizer and tokens must be saved together"
)
