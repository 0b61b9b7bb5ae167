package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/organizerhq/backoffice/internal/common/uuid UUID

// UUID generates unique identifiers, abstracted for deterministic tests
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using google/uuid

type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}
