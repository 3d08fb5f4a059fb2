package model

import "time"

// WaitingEntry is a queued request for a seat made when none was
// available.  Entries are deleted once a freed seat is dispatched to
// them.  The enrollment preference fields (start date, duration,
// amount, payment method) are recorded so staff can complete the
// enrollment when the member is assigned a seat.
//
// Fields:
//  ID            – primary key identifier; also the stable tie-break
//                  when two entries share a requested date.
//  MemberID      – member waiting for a seat.
//  LocationID    – preferred location (nil means any).
//  RequestedDate – when the member joined the queue; dispatch order key.
//  StartDate     – preferred subscription start (optional).
//  Duration      – preferred duration string (optional).
//  AmountCents   – quoted fee (optional).
//  PaymentMethod – intended payment method (optional).
//  UPICode       – UPI reference captured up front (optional).
type WaitingEntry struct {
	ID            uint64     `json:"id"`             // waiting_list.id
	MemberID      uint64     `json:"member_id"`      // waiting_list.member_id
	LocationID    *uint64    `json:"location_id"`    // waiting_list.location_id (nullable)
	RequestedDate time.Time  `json:"requested_date"` // waiting_list.requested_date
	StartDate     *time.Time `json:"start_date"`     // waiting_list.start_date (nullable)
	Duration      *string    `json:"duration"`       // waiting_list.duration (nullable)
	AmountCents   *uint32    `json:"amount_cents"`   // waiting_list.amount_cents (nullable)
	PaymentMethod *string    `json:"payment_method"` // waiting_list.payment_method (nullable)
	UPICode       *string    `json:"upi_code"`       // waiting_list.upi_code (nullable)
}

// WaitingView is the listing shape for GET /v1/waiting with the
// member's contact details populated.
type WaitingView struct {
	WaitingEntry
	MemberName  string `json:"member_name"`
	MemberEmail string `json:"member_email"`
}
