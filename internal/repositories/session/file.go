package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/organizerhq/backoffice/internal/models"
)

const (
	// File names for the two stored entries
	organizerFile = "organizer.json"
	tokensFile    = "tokens.json"
)

// Config holds configuration for the file-backed session store
type Config struct {
	// Dir is the state directory the session is stored under
	Dir string
}

// fileRepository implements the Repository interface on the local
// filesystem: one JSON document per entry, mirroring the two-entry
// key-value layout the session has always used. There is no schema
// version; a format change requires clearing both entries.
type fileRepository struct {
	dir string
}

// NewFile creates a file-backed session repository rooted at cfg.Dir,
// creating the directory if needed
func NewFile(cfg *Config) (*fileRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Dir == "" {
		return nil, ErrEmptyDir
	}

	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &fileRepository{
		dir: cfg.Dir,
	}, nil
}

// Save persists the organizer and token pair together
func (r *fileRepository) Save(ctx context.Context, input *SaveInput) error {
	if input == nil {
		return ErrNilInput
	}

	if input.Organizer == nil || input.Tokens == nil {
		return ErrPartialInput
	}

	organizerJSON, err := json.Marshal(input.Organizer)
	if err != nil {
		return fmt.Errorf("failed to marshal organizer: %w", err)
	}

	tokensJSON, err := json.Marshal(input.Tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	if err := os.WriteFile(filepath.Join(r.dir, organizerFile), organizerJSON, 0o600); err != nil {
		return fmt.Errorf("failed to write organizer entry: %w", err)
	}

	if err := os.WriteFile(filepath.Join(r.dir, tokensFile), tokensJSON, 0o600); err != nil {
		return fmt.Errorf("failed to write tokens entry: %w", err)
	}

	return nil
}

// Load retrieves the persisted session. Either entry missing or failing
// to parse counts as logged out: both entries are cleared and nil is
// returned without an error.
func (r *fileRepository) Load(ctx context.Context) (*models.Session, error) {
	organizerJSON, orgErr := os.ReadFile(filepath.Join(r.dir, organizerFile))
	tokensJSON, tokErr := os.ReadFile(filepath.Join(r.dir, tokensFile))

	if orgErr != nil || tokErr != nil {
		if os.IsNotExist(orgErr) && os.IsNotExist(tokErr) {
			return nil, nil
		}
		// Half a session is no session
		if err := r.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var organizer models.Organizer
	if err := json.Unmarshal(organizerJSON, &organizer); err != nil {
		if err := r.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var tokens models.Tokens
	if err := json.Unmarshal(tokensJSON, &tokens); err != nil {
		if err := r.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	sess := &models.Session{
		Organizer: &organizer,
		Tokens:    &tokens,
	}

	if !sess.Valid() {
		if err := r.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return sess, nil
}

// Clear removes both entries
func (r *fileRepository) Clear(ctx context.Context) error {
	for _, name := range []string{organizerFile, tokensFile} {
		if err := os.Remove(filepath.Join(r.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	return nil
}
