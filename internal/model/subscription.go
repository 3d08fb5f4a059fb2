package model

import "time"

// Subscription status values.  Subscriptions are never deleted; a
// terminated subscription is marked EXPIRED and kept for billing
// history.
const (
	SubscriptionActive  = "ACTIVE"
	SubscriptionExpired = "EXPIRED"
)

// Subscription is a time-boxed right for a member to occupy a specific
// seat.  It is created when a member is enrolled onto a seat and
// mutated to EXPIRED by the termination operation.
//
// Fields:
//  ID               – primary key identifier.
//  MemberID         – member holding the subscription.
//  SeatID           – seat reserved by the subscription.
//  StartDate        – first day of the reservation.
//  EndDate          – last day of the reservation.
//  Duration         – descriptive duration string (e.g. "3 months").
//  TotalAmountCents – agreed total fee in the smallest currency unit.
//  Status           – ACTIVE or EXPIRED.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Subscription struct {
	ID               uint64    `json:"id"`                 // subscriptions.id
	MemberID         uint64    `json:"member_id"`          // subscriptions.member_id
	SeatID           uint64    `json:"seat_id"`            // subscriptions.seat_id
	StartDate        time.Time `json:"start_date"`         // subscriptions.start_date
	EndDate          time.Time `json:"end_date"`           // subscriptions.end_date
	Duration         string    `json:"duration"`           // subscriptions.duration
	TotalAmountCents uint32    `json:"total_amount_cents"` // subscriptions.total_amount_cents
	Status           string    `json:"status"`             // subscriptions.status
	CreatedAt        time.Time `json:"created_at"`         // subscriptions.created_at
	UpdatedAt        time.Time `json:"updated_at"`         // subscriptions.updated_at
}
