package session

import (
	"context"

	"github.com/organizerhq/backoffice/internal/models"
)

// noopRepository implements the Repository interface for contexts with
// no local state available (headless runs, CI). Every operation
// succeeds and Load always reports logged out, so callers degrade to
// unauthenticated behavior instead of failing.
type noopRepository struct{}

// NewNoop creates a session repository that stores nothing
func NewNoop() *noopRepository {
	return &noopRepository{}
}

// Save discards the session
func (r *noopRepository) Save(ctx context.Context, input *SaveInput) error {
	return nil
}

// Load always reports no session
func (r *noopRepository) Load(ctx context.Context) (*models.Session, error) {
	return nil, nil
}

// Clear does nothing
func (r *noopRepository) Clear(ctx context.Context) error {
	return nil
}
