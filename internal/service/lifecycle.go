// Package service implements the seat allocation workflow: terminating
// a subscription, freeing its seat and dispatching the waiting list
// onto freed seats. The workflow is a sequence of independent writes
// against the stores; there is no wrapping transaction, so a failure
// partway leaves partial state. Such states are logged and published
// to the audit queue for manual reconciliation.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/queue"
	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// SeatStore is the seat registry surface the lifecycle needs.
type SeatStore interface {
	// Free vacates a seat, clearing member and subscription. A no-op on
	// an already-vacant seat; repository.ErrSeatNotFound when absent.
	Free(ctx context.Context, seatID uint64) error
	// Occupy assigns a seat to a member, optionally with a subscription.
	Occupy(ctx context.Context, seatID, memberID uint64, subscriptionID *uint64) error
}

// SubscriptionStore is the subscription surface the lifecycle needs.
type SubscriptionStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Subscription, error)
	MarkExpired(ctx context.Context, id uint64) error
}

// WaitingStore is the waiting-list surface the lifecycle needs.
type WaitingStore interface {
	// Next returns the earliest entry by requested date, ties broken by
	// lowest id; repository.ErrWaitingEntryNotFound on an empty queue.
	Next(ctx context.Context) (*model.WaitingEntry, error)
	Delete(ctx context.Context, id uint64) error
	Create(ctx context.Context, e *model.WaitingEntry) error
	List(ctx context.Context) ([]model.WaitingView, error)
	GetView(ctx context.Context, id uint64) (*model.WaitingView, error)
}

// MemberStore is used to validate members joining the waiting list.
type MemberStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Member, error)
}

// Publisher sends lifecycle events to the message broker. A nil
// Publisher disables publishing; failures never abort the workflow.
type Publisher interface {
	PublishSubscriptionExpired(ctx context.Context, ev queue.SubscriptionExpiredEvent) error
}

// Lifecycle coordinates subscription termination and waiting-list
// dispatch over the injected stores.
type Lifecycle struct {
	Seats         SeatStore
	Subscriptions SubscriptionStore
	Waiting       WaitingStore
	Members       MemberStore
	Events        Publisher
}

// NewLifecycle constructs a Lifecycle. Events may be nil; the stores
// must not be.
func NewLifecycle(seats SeatStore, subs SubscriptionStore, waiting WaitingStore, members MemberStore, events Publisher) *Lifecycle {
	if seats == nil || subs == nil || waiting == nil || members == nil {
		panic("nil store passed to NewLifecycle")
	}
	return &Lifecycle{Seats: seats, Subscriptions: subs, Waiting: waiting, Members: members, Events: events}
}

// Terminate ends a subscription: it is marked EXPIRED, its seat is
// freed, and the freed seat is offered to the head of the waiting
// list. Termination of an already-expired subscription re-runs the
// free/dispatch sequence; the seat side is idempotent.
// repository.ErrSubscriptionNotFound is returned, with no mutation
// anywhere, when the subscription does not exist.
func (l *Lifecycle) Terminate(ctx context.Context, subscriptionID uint64) error {
	sub, err := l.Subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if err := l.Subscriptions.MarkExpired(ctx, sub.ID); err != nil {
		return err
	}

	seatGone := false
	if err := l.Seats.Free(ctx, sub.SeatID); err != nil {
		if !errors.Is(err, repository.ErrSeatNotFound) {
			// Subscription is already expired at this point; surface the
			// partial state rather than pretending nothing happened.
			log.Printf("lifecycle: subscription %d expired but seat %d not freed: %v", sub.ID, sub.SeatID, err)
			return err
		}
		// The seat record no longer exists: treat as already reconciled
		// and skip the dispatch, since there is no seat to hand out.
		seatGone = true
		log.Printf("lifecycle: subscription %d references missing seat %d; skipping dispatch", sub.ID, sub.SeatID)
	}

	var assigned *model.WaitingEntry
	if !seatGone {
		assigned, err = l.dispatchNext(ctx, sub.SeatID)
		if err != nil {
			return err
		}
	}

	l.publishExpired(ctx, sub, assigned)
	return nil
}

// dispatchNext offers the freed seat to the earliest waiting entry.
// The queue is scanned globally, not per location: an entry waiting
// for another site can take the seat. The assignment is a bare seat
// occupation with no subscription; staff complete the enrollment
// afterwards. Returns the consumed entry, or nil when the queue was
// empty and the seat stays vacant.
func (l *Lifecycle) dispatchNext(ctx context.Context, seatID uint64) (*model.WaitingEntry, error) {
	entry, err := l.Waiting.Next(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrWaitingEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := l.Seats.Occupy(ctx, seatID, entry.MemberID, nil); err != nil {
		return nil, err
	}
	if err := l.Waiting.Delete(ctx, entry.ID); err != nil {
		// Seat already shows occupied but the entry survived: the next
		// dispatch would hand the same member a second seat. No
		// compensating write exists; flag for manual reconciliation.
		log.Printf("lifecycle: RECONCILE seat %d assigned to member %d but waiting entry %d not removed: %v",
			seatID, entry.MemberID, entry.ID, err)
		return nil, err
	}
	return entry, nil
}

// JoinWaitingList queues a member for a seat. The member must exist
// and may hold at most one entry per location; a duplicate returns
// repository.ErrConflict. The created entry is returned with the
// member's contact details populated.
func (l *Lifecycle) JoinWaitingList(ctx context.Context, e *model.WaitingEntry) (*model.WaitingView, error) {
	member, err := l.Members.GetByID(ctx, e.MemberID)
	if err != nil {
		return nil, err
	}
	if e.RequestedDate.IsZero() {
		e.RequestedDate = time.Now().UTC()
	}
	if err := l.Waiting.Create(ctx, e); err != nil {
		return nil, err
	}
	view, err := l.Waiting.GetView(ctx, e.ID)
	if err != nil {
		// The entry exists; fall back to assembling the view locally.
		return &model.WaitingView{WaitingEntry: *e, MemberName: member.Name, MemberEmail: member.Email}, nil
	}
	return view, nil
}

// ListWaiting returns the queue sorted by requested date descending.
func (l *Lifecycle) ListWaiting(ctx context.Context) ([]model.WaitingView, error) {
	return l.Waiting.List(ctx)
}

func (l *Lifecycle) publishExpired(ctx context.Context, sub *model.Subscription, assigned *model.WaitingEntry) {
	if l.Events == nil {
		return
	}
	ev := queue.SubscriptionExpiredEvent{
		SubscriptionID: sub.ID,
		MemberID:       sub.MemberID,
		SeatID:         sub.SeatID,
		ExpiredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if assigned != nil {
		ev.ReassignedMemberID = &assigned.MemberID
		ev.WaitingEntryID = &assigned.ID
	}
	if err := l.Events.PublishSubscriptionExpired(ctx, ev); err != nil {
		log.Printf("lifecycle: publish subscription.expired failed: %v", err)
	}
}
