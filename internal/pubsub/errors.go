package pubsub

// BrokerError is a custom error type for broker errors
type BrokerError string

// Error implements the error interface
func (e BrokerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig      BrokerError = "config cannot be nil"
	ErrNilRedisClient BrokerError = "redis client cannot be nil"
	ErrEmptyClientID  BrokerError = "client ID cannot be empty"
	ErrNilInput       BrokerError = "input cannot be nil"
	ErrEmptyChannel   BrokerError = "channel cannot be empty"
	ErrNilMessage     BrokerError = "message cannot be nil"
	ErrClosed         BrokerError = "broker is closed"
)
