package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rahulkg/reading-room-manager/internal/model"
)

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// Create inserts a single seat record. On success the seat's ID is populated.
// A duplicate (location, seat_number) pair surfaces as ErrConflict.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	const q = `INSERT INTO seats (location_id, seat_number, status)
	           VALUES (?, ?, 'VACANT')`
	res, err := r.db.ExecContext(ctx, q, s.LocationID, s.SeatNumber)
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
	s.ID = uint64(id)
	s.Status = model.SeatVacant
	return nil
}

// CreateBulk inserts a numbered run of vacant seats for a location in a
// single statement. Numbers run from `from` to `to` inclusive.
func (r *SeatRepo) CreateBulk(ctx context.Context, locationID uint64, from, to uint32) error {
	if to < from {
		return nil
	}
	query := `INSERT INTO seats (location_id, seat_number, status) VALUES `
	args := make([]interface{}, 0, int(to-from+1)*2)
	for n := from; n <= to; n++ {
		if n > from {
			query += ","
		}
		query += "(?, ?, 'VACANT')"
		args = append(args, locationID, n)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil && isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, location_id, seat_number, status, member_id, subscription_id, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	var memberID, subID sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.LocationID, &s.SeatNumber, &s.Status, &memberID, &subID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	if memberID.Valid {
		mid := uint64(memberID.Int64)
		s.MemberID = &mid
	}
	if subID.Valid {
		sid := uint64(subID.Int64)
		s.SubscriptionID = &sid
	}
	return &s, nil
}

// Free marks a seat vacant and clears its member and subscription
// references. Freeing an already-vacant seat is a no-op that still
// succeeds. ErrSeatNotFound is returned when the row does not exist,
// so callers can decide whether a missing seat is fatal.
func (r *SeatRepo) Free(ctx context.Context, seatID uint64) error {
	const q = `UPDATE seats
	           SET status = 'VACANT', member_id = NULL, subscription_id = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, seatID)
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for a row already in
	// the target state on MySQL, so check existence explicitly.
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const check = `SELECT EXISTS(SELECT 1 FROM seats WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, check, seatID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrSeatNotFound
		}
	}
	return nil
}

// Occupy marks a seat occupied by the given member. subscriptionID may
// be nil: a waiting-list dispatch assigns the member without a
// subscription. ErrSeatNotFound is returned when the seat does not
// exist.
func (r *SeatRepo) Occupy(ctx context.Context, seatID, memberID uint64, subscriptionID *uint64) error {
	const q = `UPDATE seats
	           SET status = 'OCCUPIED', member_id = ?, subscription_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	var sub sql.NullInt64
	if subscriptionID != nil {
		sub = sql.NullInt64{Int64: int64(*subscriptionID), Valid: true}
	}
	res, err := r.db.ExecContext(ctx, q, memberID, sub, seatID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const check = `SELECT EXISTS(SELECT 1 FROM seats WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, check, seatID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrSeatNotFound
		}
	}
	return nil
}

// OccupyTx is Occupy running inside an existing transaction. Used by
// the enrollment flow which also creates the subscription and payment.
func (r *SeatRepo) OccupyTx(ctx context.Context, tx *sql.Tx, seatID, memberID uint64, subscriptionID *uint64) error {
	const q = `UPDATE seats
	           SET status = 'OCCUPIED', member_id = ?, subscription_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	var sub sql.NullInt64
	if subscriptionID != nil {
		sub = sql.NullInt64{Int64: int64(*subscriptionID), Valid: true}
	}
	_, err := tx.ExecContext(ctx, q, memberID, sub, seatID)
	return err
}

// GetForUpdateTx loads a seat's status within a transaction using a row
// lock, so two concurrent enrollments cannot both see the seat vacant.
func (r *SeatRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, seatID uint64) (*model.Seat, error) {
	const q = `SELECT id, location_id, seat_number, status, member_id, subscription_id
	           FROM seats WHERE id = ? FOR UPDATE`
	var s model.Seat
	var memberID, subID sql.NullInt64
	err := tx.QueryRowContext(ctx, q, seatID).
		Scan(&s.ID, &s.LocationID, &s.SeatNumber, &s.Status, &memberID, &subID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	if memberID.Valid {
		mid := uint64(memberID.Int64)
		s.MemberID = &mid
	}
	if subID.Valid {
		sid := uint64(subID.Int64)
		s.SubscriptionID = &sid
	}
	return &s, nil
}

// ListByLocation retrieves seats, optionally filtered by location,
// ordered by seat number. Each row is populated with the assigned
// member's name and the backing subscription's end date and status.
// Pass locationID = 0 to list seats across all locations.
func (r *SeatRepo) ListByLocation(ctx context.Context, locationID uint64) ([]model.SeatView, error) {
	q := `SELECT s.id, s.location_id, s.seat_number, s.status, s.member_id, m.name,
	             s.subscription_id, sub.end_date, sub.status
	      FROM seats s
	      LEFT JOIN members m ON m.id = s.member_id
	      LEFT JOIN subscriptions sub ON sub.id = s.subscription_id`
	args := []interface{}{}
	if locationID != 0 {
		q += ` WHERE s.location_id = ?`
		args = append(args, locationID)
	}
	q += ` ORDER BY s.location_id, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]model.SeatView, 0)
	for rows.Next() {
		var v model.SeatView
		var memberID, subID sql.NullInt64
		var memberName, subStatus sql.NullString
		var endDate sql.NullTime
		if err := rows.Scan(
			&v.ID, &v.LocationID, &v.SeatNumber, &v.Status, &memberID, &memberName,
			&subID, &endDate, &subStatus,
		); err != nil {
			return nil, err
		}
		if memberID.Valid {
			mid := uint64(memberID.Int64)
			v.MemberID = &mid
		}
		if memberName.Valid {
			n := memberName.String
			v.MemberName = &n
		}
		if subID.Valid {
			sid := uint64(subID.Int64)
			v.SubscriptionID = &sid
		}
		if endDate.Valid {
			d := endDate.Time.UTC().Format("2006-01-02")
			v.SubscriptionEnd = &d
		}
		if subStatus.Valid {
			st := subStatus.String
			v.SubscriptionStatus = &st
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
