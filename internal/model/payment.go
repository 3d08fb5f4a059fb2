package model

import "time"

// Payment method values accepted at the front desk.
const (
	PaymentUPI  = "UPI"
	PaymentCash = "CASH"
)

// Payment records a single fee payment against a subscription.
// Payments are immutable once created; a subscription accumulates an
// append-only list of them.
//
// Fields:
//  ID             – primary key identifier.
//  SubscriptionID – subscription the payment settles.
//  AmountCents    – paid amount in the smallest currency unit.
//  Method         – UPI or CASH.
//  UPICode        – UPI transaction reference (nil for cash).
//  ReceiptNumber  – unique receipt identifier handed to the member.
//  PaidAt         – when the payment was taken.
//  CreatedAt      – creation timestamp.
type Payment struct {
	ID             uint64    `json:"id"`              // payments.id
	SubscriptionID uint64    `json:"subscription_id"` // payments.subscription_id
	AmountCents    uint32    `json:"amount_cents"`    // payments.amount_cents
	Method         string    `json:"method"`          // payments.method
	UPICode        *string   `json:"upi_code"`        // payments.upi_code (nullable)
	ReceiptNumber  string    `json:"receipt_number"`  // payments.receipt_number
	PaidAt         time.Time `json:"paid_at"`         // payments.paid_at
	CreatedAt      time.Time `json:"created_at"`      // payments.created_at
}
