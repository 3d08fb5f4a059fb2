package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// ErrInventoryItemNotFound is returned when an inventory lookup yields
// no rows.
var ErrInventoryItemNotFound = errors.New("inventory item not found")

// InventoryRepo provides CRUD operations for a location's inventory.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns an InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Create inserts an inventory item and populates the generated ID.
func (r *InventoryRepo) Create(ctx context.Context, it *model.InventoryItem) error {
	const q = `INSERT INTO inventory_items (location_id, name, quantity, unit_cost_cents, purchased_at)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, it.LocationID, it.Name, it.Quantity, it.UnitCostCents, it.PurchasedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// ListByLocation returns inventory items, optionally filtered by
// location (0 lists everything), ordered by name.
func (r *InventoryRepo) ListByLocation(ctx context.Context, locationID uint64) ([]model.InventoryItem, error) {
	q := `SELECT id, location_id, name, quantity, unit_cost_cents, purchased_at, created_at, updated_at
	      FROM inventory_items`
	args := []interface{}{}
	if locationID != 0 {
		q += ` WHERE location_id = ?`
		args = append(args, locationID)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.InventoryItem, 0)
	for rows.Next() {
		var it model.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.LocationID, &it.Name, &it.Quantity, &it.UnitCostCents,
			&it.PurchasedAt, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity adjusts an item's stocked quantity.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id uint64, quantity uint32) error {
	const q = `UPDATE inventory_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, quantity, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const check = `SELECT EXISTS(SELECT 1 FROM inventory_items WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, check, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrInventoryItemNotFound
		}
	}
	return nil
}

// Delete removes an inventory item.
func (r *InventoryRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM inventory_items WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInventoryItemNotFound
	}
	return nil
}
