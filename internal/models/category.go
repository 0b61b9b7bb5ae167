package models

import "time"

// CategoryCreation is the payload for creating or updating a category
type CategoryCreation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Category represents an event category owned by an organizer
type Category struct {
	ID          int64     `json:"id"`
	Organizer   int64     `json:"organizer"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaginatedCategories is the platform's paginated category list envelope
type PaginatedCategories struct {
	Count    int        `json:"count"`
	Next     string     `json:"next,omitempty"`
	Previous string     `json:"previous,omitempty"`
	Results  []Category `json:"results"`
}
