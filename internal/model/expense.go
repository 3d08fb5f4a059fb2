package model

import "time"

// Expense records an operating cost incurred by a location, such as
// rent, electricity or maintenance.
type Expense struct {
	ID          uint64    `json:"id"`           // expenses.id
	LocationID  uint64    `json:"location_id"`  // expenses.location_id
	Category    string    `json:"category"`     // expenses.category
	Description string    `json:"description"`  // expenses.description
	AmountCents uint32    `json:"amount_cents"` // expenses.amount_cents
	IncurredAt  time.Time `json:"incurred_at"`  // expenses.incurred_at
	CreatedAt   time.Time `json:"created_at"`   // expenses.created_at
}
