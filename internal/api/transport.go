package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/organizerhq/backoffice/internal/models"
	"github.com/organizerhq/backoffice/internal/repositories/session"
)

// transport is an http.RoundTripper that authorizes outbound requests
// and transparently recovers an expired access token once per request.
//
// The token pair is read from the session store on every request rather
// than from the in-memory session, so the transport stays decoupled from
// application state. On a 401 it exchanges the refresh token for a new
// access token, persists it (refresh token unchanged), and replays the
// original request exactly once. Whatever the replay returns is final.
// If the refresh itself fails, the caller sees the original 401, never
// a refresh-shaped error.
//
// Concurrent requests that 401 together each refresh independently;
// there is no single-flight coalescing. Last write wins on the stored
// access token.
type transport struct {
	base       http.RoundTripper
	store      session.Repository
	refreshURL string
}

// newTransport wraps base with bearer authorization backed by store.
// refreshURL is the absolute URL of the token refresh endpoint.
func newTransport(base http.RoundTripper, store session.Repository, refreshURL string) *transport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &transport{
		base:       base,
		store:      store,
		refreshURL: refreshURL,
	}
}

// RoundTrip implements http.RoundTripper
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	sess, err := t.store.Load(req.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	authed := req.Clone(req.Context())
	if sess.Valid() {
		authed.Header.Set("Authorization", "Bearer "+sess.Tokens.Access)
	}

	resp, err := t.base.RoundTrip(authed)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || !sess.Valid() {
		return resp, nil
	}

	access, refreshErr := t.refresh(req.Context(), sess)
	if refreshErr != nil {
		log.Printf("Error refreshing token: %v", refreshErr)
		// Caller handles the original 401, not the refresh failure
		return resp, nil
	}

	retry, retryErr := cloneWithBody(req)
	if retryErr != nil {
		return resp, nil
	}

	drain(resp)

	retry.Header.Set("Authorization", "Bearer "+access)
	return t.base.RoundTrip(retry)
}

// refresh exchanges the session's refresh token for a new access token
// and persists the updated pair. The refresh token itself is never
// rotated here; only a fresh login replaces it.
func (t *transport) refresh(ctx context.Context, sess *models.Session) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"refresh": sess.Tokens.Refresh,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// The refresh call goes straight to the base transport so it is
	// never itself intercepted
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return "", newAPIError(resp.StatusCode, body)
	}

	var refreshed struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}

	if refreshed.Access == "" {
		return "", fmt.Errorf("refresh response contained no access token")
	}

	if err := t.store.Save(ctx, &session.SaveInput{
		Organizer: sess.Organizer,
		Tokens: &models.Tokens{
			Access:  refreshed.Access,
			Refresh: sess.Tokens.Refresh,
		},
	}); err != nil {
		return "", fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	return refreshed.Access, nil
}

// cloneWithBody clones req with a replayable copy of its body
func cloneWithBody(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())

	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}

	if req.GetBody == nil {
		return nil, fmt.Errorf("request body cannot be replayed")
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("failed to reopen request body: %w", err)
	}
	clone.Body = body

	return clone, nil
}

// drain discards and closes a response body so the connection can be reused
func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}
}
