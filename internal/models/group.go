package models

import "time"

// Group represents an attendee chat group attached to an event
type Group struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Event        Event     `json:"event"`
	Description  string    `json:"description,omitempty"`
	Organization int64     `json:"organization,omitempty"`
	MembersCount int       `json:"members_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PaginatedGroups is the platform's paginated group list envelope
type PaginatedGroups struct {
	Count    int     `json:"count"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
	Results  []Group `json:"results"`
}
