package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// LocationRepo provides CRUD operations for locations.
type LocationRepo struct {
	db *sql.DB
}

// NewLocationRepo returns a LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// Create inserts a location and populates the generated ID.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	const q = `INSERT INTO locations (name, address) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, l.Name, l.Address)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	l.IsActive = true
	return nil
}

// GetByID retrieves a location by id.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
	const q = `SELECT id, name, address, is_active, created_at, updated_at
	           FROM locations WHERE id = ?`
	var l model.Location
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.Name, &l.Address, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns all locations ordered by name.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	const q = `SELECT id, name, address, is_active, created_at, updated_at
	           FROM locations ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]model.Location, 0)
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return locations, nil
}

// Update rewrites a location's details. ErrLocationNotFound is
// returned when the row does not exist.
func (r *LocationRepo) Update(ctx context.Context, l *model.Location) error {
	const q = `UPDATE locations
	           SET name = ?, address = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, l.Name, l.Address, l.IsActive, l.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const check = `SELECT EXISTS(SELECT 1 FROM locations WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, check, l.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrLocationNotFound
		}
	}
	return nil
}

// Delete removes a location. Locations that still have seats cannot be
// deleted; ErrConflict is returned instead.
func (r *LocationRepo) Delete(ctx context.Context, id uint64) error {
	const seatQ = `SELECT EXISTS(SELECT 1 FROM seats WHERE location_id = ?)`
	var hasSeats bool
	if err := r.db.QueryRowContext(ctx, seatQ, id).Scan(&hasSeats); err != nil {
		return err
	}
	if hasSeats {
		return ErrConflict
	}
	const q = `DELETE FROM locations WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLocationNotFound
	}
	return nil
}
