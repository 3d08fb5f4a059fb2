package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// MemberRepo provides CRUD operations for members.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo returns a MemberRepo bound to the given database.
func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

// Create inserts a member and populates the generated ID. A duplicate
// email surfaces as ErrEmailExists.
func (r *MemberRepo) Create(ctx context.Context, m *model.Member) error {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	const q = `INSERT INTO members (name, email, phone, address, joined_at)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Email, m.Phone, m.Address, m.JoinedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	m.IsActive = true
	return nil
}

// GetByID retrieves a member by id.
func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (*model.Member, error) {
	const q = `SELECT id, name, email, phone, address, is_active, joined_at, created_at, updated_at
	           FROM members WHERE id = ?`
	var m model.Member
	var address sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &address, &m.IsActive,
		&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if address.Valid {
		a := address.String
		m.Address = &a
	}
	return &m, nil
}

// List returns all members ordered by name.
func (r *MemberRepo) List(ctx context.Context) ([]model.Member, error) {
	const q = `SELECT id, name, email, phone, address, is_active, joined_at, created_at, updated_at
	           FROM members ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]model.Member, 0)
	for rows.Next() {
		var m model.Member
		var address sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone, &address, &m.IsActive,
			&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if address.Valid {
			a := address.String
			m.Address = &a
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// Update rewrites a member's contact details and active flag.
// ErrMemberNotFound is returned when the row does not exist.
func (r *MemberRepo) Update(ctx context.Context, m *model.Member) error {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	const q = `UPDATE members
	           SET name = ?, email = ?, phone = ?, address = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Email, m.Phone, m.Address, m.IsActive, m.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const check = `SELECT EXISTS(SELECT 1 FROM members WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, check, m.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrMemberNotFound
		}
	}
	return nil
}

// Delete removes a member. Members with an active subscription cannot
// be deleted; ErrConflict is returned instead.
func (r *MemberRepo) Delete(ctx context.Context, id uint64) error {
	const activeQ = `SELECT EXISTS(
	                   SELECT 1 FROM subscriptions WHERE member_id = ? AND status = 'ACTIVE'
	                 )`
	var active bool
	if err := r.db.QueryRowContext(ctx, activeQ, id).Scan(&active); err != nil {
		return err
	}
	if active {
		return ErrConflict
	}
	const q = `DELETE FROM members WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return nil
}
