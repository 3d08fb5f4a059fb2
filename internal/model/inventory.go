package model

import "time"

// InventoryItem tracks equipment and supplies owned by a location
// (chairs, lamps, water cans and the like).
type InventoryItem struct {
	ID            uint64    `json:"id"`              // inventory_items.id
	LocationID    uint64    `json:"location_id"`     // inventory_items.location_id
	Name          string    `json:"name"`            // inventory_items.name
	Quantity      uint32    `json:"quantity"`        // inventory_items.quantity
	UnitCostCents uint32    `json:"unit_cost_cents"` // inventory_items.unit_cost_cents
	PurchasedAt   time.Time `json:"purchased_at"`    // inventory_items.purchased_at
	CreatedAt     time.Time `json:"created_at"`      // inventory_items.created_at
	UpdatedAt     time.Time `json:"updated_at"`      // inventory_items.updated_at
}
