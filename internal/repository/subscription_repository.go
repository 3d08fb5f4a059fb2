package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// SubscriptionRepo provides persistence for subscriptions.
// Subscriptions are never deleted; a terminated subscription is marked
// EXPIRED and kept for billing history.
type SubscriptionRepo struct {
	db *sql.DB
}

// NewSubscriptionRepo returns a SubscriptionRepo bound to the given database.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

// DB exposes the underlying handle for transaction-spanning flows.
func (r *SubscriptionRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new ACTIVE subscription within an existing
// transaction and populates the generated ID. The caller must commit
// or rollback.
func (r *SubscriptionRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Subscription) error {
	const q = `INSERT INTO subscriptions (member_id, seat_id, start_date, end_date, duration, total_amount_cents, status)
	           VALUES (?, ?, ?, ?, ?, ?, 'ACTIVE')`
	res, err := tx.ExecContext(ctx, q,
		s.MemberID, s.SeatID, s.StartDate, s.EndDate, s.Duration, s.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = model.SubscriptionActive
	return nil
}

// GetByID retrieves a subscription by its id.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id uint64) (*model.Subscription, error) {
	const q = `SELECT id, member_id, seat_id, start_date, end_date, duration, total_amount_cents, status, created_at, updated_at
	           FROM subscriptions WHERE id = ?`
	var s model.Subscription
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MemberID, &s.SeatID, &s.StartDate, &s.EndDate,
		&s.Duration, &s.TotalAmountCents, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// MarkExpired sets the subscription's status to EXPIRED. It succeeds
// even when the subscription is already expired; termination is
// idempotent on the subscription side. ErrSubscriptionNotFound is
// returned when the row does not exist.
func (r *SubscriptionRepo) MarkExpired(ctx context.Context, id uint64) error {
	const q = `UPDATE subscriptions
	           SET status = 'EXPIRED', updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const check = `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, check, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrSubscriptionNotFound
		}
	}
	return nil
}

// ListByMember returns a member's subscriptions, newest first.
func (r *SubscriptionRepo) ListByMember(ctx context.Context, memberID uint64) ([]model.Subscription, error) {
	const q = `SELECT id, member_id, seat_id, start_date, end_date, duration, total_amount_cents, status, created_at, updated_at
	           FROM subscriptions
	           WHERE member_id = ?
	           ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]model.Subscription, 0)
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(
			&s.ID, &s.MemberID, &s.SeatID, &s.StartDate, &s.EndDate,
			&s.Duration, &s.TotalAmountCents, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}
