package session

// SessionError is a custom error type for session lifecycle errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilStore         SessionError = "session store cannot be nil"
	ErrNilRefresher     SessionError = "token refresher cannot be nil"
	ErrNilInput         SessionError = "input cannot be nil"
	ErrIncompleteLogin  SessionError = "login payload must carry organizer and tokens"
	ErrNotAuthenticated SessionError = "no authenticated session"
)
