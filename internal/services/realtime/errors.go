package realtime

// BinderError is a custom error type for binder errors
type BinderError string

// Error implements the error interface
func (e BinderError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig      BinderError = "config cannot be nil"
	ErrNilBroker      BinderError = "broker cannot be nil"
	ErrEmptyClientID  BinderError = "client ID cannot be empty"
	ErrNilInput       BinderError = "input cannot be nil"
	ErrNoChannelBound BinderError = "no channel bound"
	ErrEmptyMessage   BinderError = "message cannot be empty"
)
