package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/organizerhq/backoffice/internal/models"
	"github.com/organizerhq/backoffice/internal/repositories/session"
)

const refreshPath = "/auth/token/refresh/"

// Config holds configuration for the API client
type Config struct {
	// BaseURL is the platform API root, e.g. https://api.example.com/api/v1
	BaseURL string

	// Store is the session repository tokens are read from and refreshed into
	Store session.Repository

	// Base optionally overrides the underlying transport
	Base http.RoundTripper

	// Timeout bounds each request; zero means no client-side timeout,
	// matching the back office's run-to-completion behavior
	Timeout time.Duration
}

// Client is the typed client for the platform's organizer API. Every
// request goes through the authorizing transport, so callers never
// handle tokens themselves.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an API client whose requests carry the stored access
// token and self-heal expired tokens via the refresh endpoint
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	if cfg.Store == nil {
		return nil, ErrNilStore
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: newTransport(cfg.Base, cfg.Store, baseURL+refreshPath),
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// do issues one JSON request and decodes the response into out when
// provided. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Login authenticates an organizer and returns the verified session
// payload: the organizer record plus its token pair
func (c *Client) Login(ctx context.Context, input *LoginInput) (*models.Session, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var verified struct {
		User   *models.Organizer `json:"user"`
		Tokens *models.Tokens    `json:"tokens"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login/", input, &verified); err != nil {
		return nil, err
	}

	return &models.Session{
		Organizer: verified.User,
		Tokens:    verified.Tokens,
	}, nil
}

// RegisterOrganizer signs up a new organization account. The account
// stays unverified until VerifyEmail succeeds.
func (c *Client) RegisterOrganizer(ctx context.Context, input *RegisterOrganizerInput) error {
	if input == nil {
		return ErrNilInput
	}

	return c.do(ctx, http.MethodPost, "/auth/organization/register/", input, nil)
}

// VerifyEmail confirms a signup with the emailed one-time code and
// returns the verified session payload
func (c *Client) VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*models.Session, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var verified struct {
		User   *models.Organizer `json:"user"`
		Tokens *models.Tokens    `json:"tokens"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/email/verify/", input, &verified); err != nil {
		return nil, err
	}

	return &models.Session{
		Organizer: verified.User,
		Tokens:    verified.Tokens,
	}, nil
}

// ResendOTP asks the platform to resend the verification code
func (c *Client) ResendOTP(ctx context.Context, input *ResendOTPInput) (*ResendOTPOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var output ResendOTPOutput
	if err := c.do(ctx, http.MethodPost, "/auth/otp/resend/", input, &output); err != nil {
		return nil, err
	}

	return &output, nil
}

// RefreshToken exchanges a refresh token for a new access token
func (c *Client) RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var output RefreshTokenOutput
	if err := c.do(ctx, http.MethodPost, refreshPath, input, &output); err != nil {
		return nil, err
	}

	return &output, nil
}

// RefreshAccessToken adapts RefreshToken to the session service's
// TokenRefresher collaborator
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	output, err := c.RefreshToken(ctx, &RefreshTokenInput{Refresh: refreshToken})
	if err != nil {
		return "", err
	}

	return output.Access, nil
}

// CreateEvent publishes a new event
func (c *Client) CreateEvent(ctx context.Context, input *models.EventCreation) (*models.Event, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var event models.Event
	if err := c.do(ctx, http.MethodPost, "/events/", input, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// GetEvent retrieves one event by id
func (c *Client) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", eventID), nil, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// UpdateEvent replaces an event's details
func (c *Client) UpdateEvent(ctx context.Context, eventID int64, input *models.EventCreation) (*models.Event, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var event models.Event
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", eventID), input, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// DeleteEvent removes an event
func (c *Client) DeleteEvent(ctx context.Context, eventID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", eventID), nil, nil)
}

// ListOrganizerEvents pages through an organizer's events
func (c *Client) ListOrganizerEvents(ctx context.Context, input *ListOrganizerEventsInput) (*models.PaginatedEvents, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var page models.PaginatedEvents
	path := fmt.Sprintf("/organizations/%d/events/", input.OrganizerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// CreateCategory creates an event category
func (c *Client) CreateCategory(ctx context.Context, input *models.CategoryCreation) (*models.Category, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/categories/", input, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// GetCategory retrieves one category by id
func (c *Client) GetCategory(ctx context.Context, categoryID int64) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d/", categoryID), nil, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// UpdateCategory replaces a category's details
func (c *Client) UpdateCategory(ctx context.Context, categoryID int64, input *models.CategoryCreation) (*models.Category, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var category models.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d/", categoryID), input, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(ctx context.Context, categoryID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d/", categoryID), nil, nil)
}

// ListCategories pages through the organizer's categories
func (c *Client) ListCategories(ctx context.Context) (*models.PaginatedCategories, error) {
	var page models.PaginatedCategories
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// CreateTicket creates a ticket tier on an event
func (c *Client) CreateTicket(ctx context.Context, input *models.TicketCreation) (*models.Ticket, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var ticket models.Ticket
	if err := c.do(ctx, http.MethodPost, "/tickets/", input, &ticket); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// ListEventTickets retrieves the ticket tiers of an event
func (c *Client) ListEventTickets(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d/tickets", eventID), nil, &tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

// DeleteTicket removes a ticket tier
func (c *Client) DeleteTicket(ctx context.Context, ticketID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tickets/%d", ticketID), nil, nil)
}

// ListGroups pages through the organization's chat groups
func (c *Client) ListGroups(ctx context.Context, input *ListGroupsInput) (*models.PaginatedGroups, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("page_size", fmt.Sprintf("%d", pageSize))

	var groups models.PaginatedGroups
	if err := c.do(ctx, http.MethodGet, "/organizations/groups/?"+query.Encode(), nil, &groups); err != nil {
		return nil, err
	}

	return &groups, nil
}

// DeleteGroup removes a chat group
func (c *Client) DeleteGroup(ctx context.Context, groupID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/organizations/groups/%d/", groupID), nil, nil)
}

// UpdateOrganizerProfile patches the organization's profile and returns
// the updated record
func (c *Client) UpdateOrganizerProfile(ctx context.Context, input *UpdateProfileInput) (*models.Profile, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var profile models.Profile
	if err := c.do(ctx, http.MethodPatch, "/organizations/profile/", input, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateVerification submits an organizer's identity document for review
func (c *Client) UpdateVerification(ctx context.Context, input *UpdateVerificationInput) error {
	if input == nil {
		return ErrNilInput
	}

	path := fmt.Sprintf("/organizers/%d/verify", input.OrganizerID)
	return c.do(ctx, http.MethodPut, path, input, nil)
}

// GetOrganizationAnalytics retrieves the dashboard summary metrics
func (c *Client) GetOrganizationAnalytics(ctx context.Context) (*models.Analytics, error) {
	var analytics models.Analytics
	if err := c.do(ctx, http.MethodGet, "/organizations/analytics/", nil, &analytics); err != nil {
		return nil, err
	}

	return &analytics, nil
}
