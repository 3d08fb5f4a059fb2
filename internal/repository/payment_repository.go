package repository

import (
	"context"
	"database/sql"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// PaymentRepo provides append-only persistence for payments. Payments
// are immutable once created; there are no update or delete methods.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts a payment and populates the generated ID.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (subscription_id, amount_cents, method, upi_code, receipt_number, paid_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.SubscriptionID, p.AmountCents, p.Method, p.UPICode, p.ReceiptNumber, p.PaidAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// CreateTx is Create running inside an existing transaction, used by
// the enrollment flow to record the initial payment atomically with
// the subscription.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `INSERT INTO payments (subscription_id, amount_cents, method, upi_code, receipt_number, paid_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		p.SubscriptionID, p.AmountCents, p.Method, p.UPICode, p.ReceiptNumber, p.PaidAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// ListBySubscription returns a subscription's payments in the order
// they were taken.
func (r *PaymentRepo) ListBySubscription(ctx context.Context, subscriptionID uint64) ([]model.Payment, error) {
	const q = `SELECT id, subscription_id, amount_cents, method, upi_code, receipt_number, paid_at, created_at
	           FROM payments
	           WHERE subscription_id = ?
	           ORDER BY paid_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, subscriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		var upi sql.NullString
		if err := rows.Scan(
			&p.ID, &p.SubscriptionID, &p.AmountCents, &p.Method, &upi,
			&p.ReceiptNumber, &p.PaidAt, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		if upi.Valid {
			u := upi.String
			p.UPICode = &u
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
