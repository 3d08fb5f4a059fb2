package repository

import (
	"context"
	"database/sql"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// ExpenseRepo provides append-only persistence for location expenses.
type ExpenseRepo struct {
	db *sql.DB
}

// NewExpenseRepo returns an ExpenseRepo bound to the given database.
func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

// Create inserts an expense and populates the generated ID.
func (r *ExpenseRepo) Create(ctx context.Context, e *model.Expense) error {
	const q = `INSERT INTO expenses (location_id, category, description, amount_cents, incurred_at)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.LocationID, e.Category, e.Description, e.AmountCents, e.IncurredAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// ListByLocation returns expenses, optionally filtered by location
// (0 lists everything), newest first.
func (r *ExpenseRepo) ListByLocation(ctx context.Context, locationID uint64) ([]model.Expense, error) {
	q := `SELECT id, location_id, category, description, amount_cents, incurred_at, created_at
	      FROM expenses`
	args := []interface{}{}
	if locationID != 0 {
		q += ` WHERE location_id = ?`
		args = append(args, locationID)
	}
	q += ` ORDER BY incurred_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]model.Expense, 0)
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(
			&e.ID, &e.LocationID, &e.Category, &e.Description, &e.AmountCents,
			&e.IncurredAt, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}
