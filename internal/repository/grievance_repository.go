package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// ErrGrievanceNotFound is returned when a grievance lookup yields no
// rows.
var ErrGrievanceNotFound = errors.New("grievance not found")

// GrievanceRepo provides persistence for member grievances.
type GrievanceRepo struct {
	db *sql.DB
}

// NewGrievanceRepo returns a GrievanceRepo bound to the given database.
func NewGrievanceRepo(db *sql.DB) *GrievanceRepo { return &GrievanceRepo{db: db} }

// Create inserts an OPEN grievance and populates the generated ID.
func (r *GrievanceRepo) Create(ctx context.Context, g *model.Grievance) error {
	const q = `INSERT INTO grievances (member_id, subject, description, status)
	           VALUES (?, ?, ?, 'OPEN')`
	res, err := r.db.ExecContext(ctx, q, g.MemberID, g.Subject, g.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	g.Status = model.GrievanceOpen
	return nil
}

// List returns grievances, newest first. memberID = 0 lists all;
// otherwise only that member's grievances are returned so MEMBER
// accounts see their own filings only.
func (r *GrievanceRepo) List(ctx context.Context, memberID uint64) ([]model.Grievance, error) {
	q := `SELECT id, member_id, subject, description, status, resolution, resolved_at, created_at
	      FROM grievances`
	args := []interface{}{}
	if memberID != 0 {
		q += ` WHERE member_id = ?`
		args = append(args, memberID)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grievances := make([]model.Grievance, 0)
	for rows.Next() {
		var g model.Grievance
		var resolution sql.NullString
		var resolvedAt sql.NullTime
		if err := rows.Scan(
			&g.ID, &g.MemberID, &g.Subject, &g.Description, &g.Status,
			&resolution, &resolvedAt, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		if resolution.Valid {
			s := resolution.String
			g.Resolution = &s
		}
		if resolvedAt.Valid {
			t := resolvedAt.Time
			g.ResolvedAt = &t
		}
		grievances = append(grievances, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grievances, nil
}

// Resolve marks a grievance RESOLVED with the given note.
// ErrGrievanceNotFound is returned when the row does not exist.
func (r *GrievanceRepo) Resolve(ctx context.Context, id uint64, resolution string) error {
	const q = `UPDATE grievances
	           SET status = 'RESOLVED', resolution = ?, resolved_at = NOW()
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, resolution, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const check = `SELECT EXISTS(SELECT 1 FROM grievances WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, check, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrGrievanceNotFound
		}
	}
	return nil
}
