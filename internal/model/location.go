package model

import "time"

// Location is a physical site partitioning seats, staff assignment,
// inventory and expenses.
type Location struct {
	ID        uint64    `json:"id"`         // locations.id
	Name      string    `json:"name"`       // locations.name
	Address   string    `json:"address"`    // locations.address
	IsActive  bool      `json:"is_active"`  // locations.is_active
	CreatedAt time.Time `json:"created_at"` // locations.created_at
	UpdatedAt time.Time `json:"updated_at"` // locations.updated_at
}
