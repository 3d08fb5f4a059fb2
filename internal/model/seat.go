package model

import "time"

// Seat status values.  A seat is either vacant or occupied; there is
// no intermediate state.
const (
	SeatVacant   = "VACANT"
	SeatOccupied = "OCCUPIED"
)

// Seat describes a physical seat at a location.  Seats are uniquely
// identified by their location and seat number.  An occupied seat
// carries the assigned member and, when the occupation came from an
// enrollment, the active subscription.  A seat assigned straight off
// the waiting list has a member but no subscription until staff
// complete the enrollment.
//
// Fields:
//  ID             – primary key identifier.
//  LocationID     – location the seat belongs to.
//  SeatNumber     – number of the seat, unique per location.
//  Status         – VACANT or OCCUPIED.
//  MemberID       – member currently assigned (nil when vacant).
//  SubscriptionID – active subscription backing the assignment (nil
//                   when vacant or when assigned from the waiting list).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Seat struct {
	ID             uint64    `json:"id"`              // seats.id
	LocationID     uint64    `json:"location_id"`     // seats.location_id
	SeatNumber     uint32    `json:"seat_number"`     // seats.seat_number
	Status         string    `json:"status"`          // seats.status
	MemberID       *uint64   `json:"member_id"`       // seats.member_id (nullable)
	SubscriptionID *uint64   `json:"subscription_id"` // seats.subscription_id (nullable)
	CreatedAt      time.Time `json:"created_at"`      // seats.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // seats.updated_at
}

// SeatView is the listing shape returned by GET /v1/seats.  It extends
// the seat row with the assigned member's name and a summary of the
// backing subscription so the front desk can see expiries at a glance.
type SeatView struct {
	ID                 uint64  `json:"id"`
	LocationID         uint64  `json:"location_id"`
	SeatNumber         uint32  `json:"seat_number"`
	Status             string  `json:"status"`
	MemberID           *uint64 `json:"member_id,omitempty"`
	MemberName         *string `json:"member_name,omitempty"`
	SubscriptionID     *uint64 `json:"subscription_id,omitempty"`
	SubscriptionEnd    *string `json:"subscription_end,omitempty"`
	SubscriptionStatus *string `json:"subscription_status,omitempty"`
}
