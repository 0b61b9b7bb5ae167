package session

import "github.com/organizerhq/backoffice/internal/models"

// SaveInput contains parameters for persisting a session
type SaveInput struct {
	Organizer *models.Organizer
	Tokens    *models.Tokens
}
