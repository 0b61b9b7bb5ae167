package models

import "time"

// TicketCreation is the payload for creating a ticket tier on an event.
// Price travels as a decimal string on the wire.
type TicketCreation struct {
	Event      int64     `json:"event"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

// Ticket represents a ticket tier as returned by the platform
type Ticket struct {
	ID            int64     `json:"id"`
	Event         int64     `json:"event"`
	Name          string    `json:"name"`
	OnsitePayment bool      `json:"onsite_payement"`
	Price         string    `json:"price"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
