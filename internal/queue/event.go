// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into an audit
// trail.
package queue

// SubscriptionExpiredEvent is published after a subscription is
// terminated. It records the freed seat and, when the waiting list was
// non-empty, the member the seat was handed to, so downstream
// consumers can audit reassignments without querying the primary
// database.
type SubscriptionExpiredEvent struct {
	SubscriptionID     uint64  `json:"subscription_id"`
	MemberID           uint64  `json:"member_id"`
	SeatID             uint64  `json:"seat_id"`
	ReassignedMemberID *uint64 `json:"reassigned_member_id,omitempty"`
	WaitingEntryID     *uint64 `json:"waiting_entry_id,omitempty"`
	ExpiredAt          string  `json:"expired_at"`
}
