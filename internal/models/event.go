package models

import "time"

// Hashtag is a label attached to an event
type Hashtag struct {
	Name string `json:"name"`
}

// Rating represents a single attendee rating on an event
type Rating struct {
	ID        int64     `json:"id"`
	User      User      `json:"user"`
	Value     float64   `json:"value"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventCreation is the payload for creating or updating an event
type EventCreation struct {
	Category      []int64   `json:"category"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Location      string    `json:"location"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CoverImageURL []string  `json:"cover_image_url"`
	IsPublic      bool      `json:"is_public"`
	OnsitePayment bool      `json:"onsite_payement"`
	HashtagsList  []string  `json:"hashtags_list"`
}

// Event represents a published event as returned by the platform
type Event struct {
	ID            int64     `json:"id"`
	Organizer     Organizer `json:"organizer"`
	Category      []int64   `json:"category"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Location      string    `json:"location"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CoverImageURL []string  `json:"cover_image_url"`
	IsPublic      bool      `json:"is_public"`

	// OnsitePayment keeps the platform's wire spelling
	OnsitePayment bool `json:"onsite_payement"`

	Hashtags       []Hashtag `json:"hashtags,omitempty"`
	LikesCount     int       `json:"likes_count"`
	Liked          bool      `json:"liked"`
	Rated          bool      `json:"rated"`
	AverageRating  float64   `json:"average_rating"`
	RatingCount    int       `json:"rating_count"`
	BookmarksCount int       `json:"bookmarks_count"`
	Rating         *Rating   `json:"rating,omitempty"`
	AttendeeCount  int       `json:"attendee_count"`
	HasAttended    bool      `json:"has_attended"`
	HasTicket      bool      `json:"has_ticket"`
	Bookmarked     bool      `json:"bookmarked"`
	TotalRevenue   float64   `json:"total_revenue"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PaginatedEvents is the platform's paginated event list envelope
type PaginatedEvents struct {
	Count    int     `json:"count"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
	Results  []Event `json:"results"`
}
