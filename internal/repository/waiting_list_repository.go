package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// ErrWaitingEntryNotFound is returned when a waiting-list lookup yields
// no rows.
var ErrWaitingEntryNotFound = errors.New("waiting entry not found")

// WaitingListRepo provides persistence for the seat waiting list.
// Entries live until a freed seat is dispatched to them, then they are
// deleted.
type WaitingListRepo struct {
	db *sql.DB
}

// NewWaitingListRepo returns a WaitingListRepo bound to the given database.
func NewWaitingListRepo(db *sql.DB) *WaitingListRepo { return &WaitingListRepo{db: db} }

// Create inserts a waiting-list entry and populates its generated ID.
// A member may queue once per location; a second request for the same
// (member, location) pair returns ErrConflict. The location may be
// NULL, meaning the member will take a seat anywhere; the NULL bucket
// is likewise limited to one entry per member.
func (r *WaitingListRepo) Create(ctx context.Context, e *model.WaitingEntry) error {
	const dupQ = `SELECT EXISTS(
	                SELECT 1 FROM waiting_list
	                WHERE member_id = ? AND (location_id <=> ?)
	              )`
	var loc sql.NullInt64
	if e.LocationID != nil {
		loc = sql.NullInt64{Int64: int64(*e.LocationID), Valid: true}
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, dupQ, e.MemberID, loc).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrConflict
	}

	const q = `INSERT INTO waiting_list
	           (member_id, location_id, requested_date, start_date, duration, amount_cents, payment_method, upi_code)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.MemberID, loc, e.RequestedDate, e.StartDate, e.Duration,
		e.AmountCents, e.PaymentMethod, e.UPICode)
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

// Next returns the entry with the earliest requested_date across the
// entire queue, breaking ties by lowest id. The selection is global,
// not scoped to any location. ErrWaitingEntryNotFound signals an empty
// queue.
func (r *WaitingListRepo) Next(ctx context.Context) (*model.WaitingEntry, error) {
	const q = `SELECT id, member_id, location_id, requested_date, start_date, duration, amount_cents, payment_method, upi_code
	           FROM waiting_list
	           ORDER BY requested_date ASC, id ASC
	           LIMIT 1`
	e, err := r.scanOne(r.db.QueryRowContext(ctx, q))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWaitingEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes a consumed entry. Deleting an already-removed entry
// returns ErrWaitingEntryNotFound so a racing dispatch is visible to
// the caller.
func (r *WaitingListRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM waiting_list WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWaitingEntryNotFound
	}
	return nil
}

// List returns all waiting entries sorted by requested_date descending
// (newest requests first, the order the front desk reviews them in),
// with the member's name and email populated.
func (r *WaitingListRepo) List(ctx context.Context) ([]model.WaitingView, error) {
	const q = `SELECT w.id, w.member_id, w.location_id, w.requested_date,
	                  w.start_date, w.duration, w.amount_cents, w.payment_method, w.upi_code,
	                  m.name, m.email
	           FROM waiting_list w
	           JOIN members m ON m.id = w.member_id
	           ORDER BY w.requested_date DESC, w.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]model.WaitingView, 0)
	for rows.Next() {
		var v model.WaitingView
		var loc sql.NullInt64
		var start sql.NullTime
		var duration, method, upi sql.NullString
		var amount sql.NullInt64
		if err := rows.Scan(
			&v.ID, &v.MemberID, &loc, &v.RequestedDate,
			&start, &duration, &amount, &method, &upi,
			&v.MemberName, &v.MemberEmail,
		); err != nil {
			return nil, err
		}
		fillOptional(&v.WaitingEntry, loc, start, duration, amount, method, upi)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// GetView loads a single entry with its member populated, used to echo
// the created entry back to the client.
func (r *WaitingListRepo) GetView(ctx context.Context, id uint64) (*model.WaitingView, error) {
	const q = `SELECT w.id, w.member_id, w.location_id, w.requested_date,
	                  w.start_date, w.duration, w.amount_cents, w.payment_method, w.upi_code,
	                  m.name, m.email
	           FROM waiting_list w
	           JOIN members m ON m.id = w.member_id
	           WHERE w.id = ?`
	var v model.WaitingView
	var loc sql.NullInt64
	var start sql.NullTime
	var duration, method, upi sql.NullString
	var amount sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.MemberID, &loc, &v.RequestedDate,
		&start, &duration, &amount, &method, &upi,
		&v.MemberName, &v.MemberEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWaitingEntryNotFound
		}
		return nil, err
	}
	fillOptional(&v.WaitingEntry, loc, start, duration, amount, method, upi)
	return &v, nil
}

func (r *WaitingListRepo) scanOne(row *sql.Row) (*model.WaitingEntry, error) {
	var e model.WaitingEntry
	var loc sql.NullInt64
	var start sql.NullTime
	var duration, method, upi sql.NullString
	var amount sql.NullInt64
	if err := row.Scan(
		&e.ID, &e.MemberID, &loc, &e.RequestedDate,
		&start, &duration, &amount, &method, &upi,
	); err != nil {
		return nil, err
	}
	fillOptional(&e, loc, start, duration, amount, method, upi)
	return &e, nil
}

func fillOptional(e *model.WaitingEntry, loc sql.NullInt64, start sql.NullTime, duration sql.NullString, amount sql.NullInt64, method, upi sql.NullString) {
	if loc.Valid {
		l := uint64(loc.Int64)
		e.LocationID = &l
	}
	if start.Valid {
		t := start.Time
		e.StartDate = &t
	}
	if duration.Valid {
		d := duration.String
		e.Duration = &d
	}
	if amount.Valid {
		a := uint32(amount.Int64)
		e.AmountCents = &a
	}
	if method.Valid {
		m := method.String
		e.PaymentMethod = &m
	}
	if upi.Valid {
		u := upi.String
		e.UPICode = &u
	}
}
