package session

import (
	"context"

	"github.com/organizerhq/backoffice/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/organizerhq/backoffice/internal/repositories/session Repository

// Repository defines the interface for session persistence: the organizer
// record and its token pair, stored across restarts.
type Repository interface {
	// Save persists the organizer and token pair together
	Save(ctx context.Context, input *SaveInput) error

	// Load retrieves the persisted session. A missing or corrupt session
	// yields nil with no error; corrupt entries are cleared on the way out.
	Load(ctx context.Context) (*models.Session, error)

	// Clear removes both entries. Safe to call when nothing is stored.
	Clear(ctx context.Context) error
}
