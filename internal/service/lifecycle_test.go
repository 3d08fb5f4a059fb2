package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/queue"
	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// ----- fakes -----

type occupation struct {
	seatID   uint64
	memberID uint64
	subID    *uint64
}

type fakeSeats struct {
	freed    []uint64
	occupied []occupation
	missing  map[uint64]bool
	freeErr  error
}

func (f *fakeSeats) Free(_ context.Context, seatID uint64) error {
	if f.freeErr != nil {
		return f.freeErr
	}
	if f.missing[seatID] {
		return repository.ErrSeatNotFound
	}
	f.freed = append(f.freed, seatID)
	return nil
}

func (f *fakeSeats) Occupy(_ context.Context, seatID, memberID uint64, subID *uint64) error {
	f.occupied = append(f.occupied, occupation{seatID: seatID, memberID: memberID, subID: subID})
	return nil
}

type fakeSubs struct {
	byID    map[uint64]*model.Subscription
	expired []uint64
}

func (f *fakeSubs) GetByID(_ context.Context, id uint64) (*model.Subscription, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubs) MarkExpired(_ context.Context, id uint64) error {
	f.expired = append(f.expired, id)
	if s, ok := f.byID[id]; ok {
		s.Status = model.SubscriptionExpired
	}
	return nil
}

type fakeWaiting struct {
	entries   []model.WaitingEntry
	deleted   []uint64
	deleteErr error
}

func (f *fakeWaiting) Next(_ context.Context) (*model.WaitingEntry, error) {
	if len(f.entries) == 0 {
		return nil, repository.ErrWaitingEntryNotFound
	}
	best := f.entries[0]
	for _, e := range f.entries[1:] {
		if e.RequestedDate.Before(best.RequestedDate) ||
			(e.RequestedDate.Equal(best.RequestedDate) && e.ID < best.ID) {
			best = e
		}
	}
	cp := best
	return &cp, nil
}

func (f *fakeWaiting) Delete(_ context.Context, id uint64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return repository.ErrWaitingEntryNotFound
}

func (f *fakeWaiting) Create(_ context.Context, e *model.WaitingEntry) error {
	for _, ex := range f.entries {
		if ex.MemberID == e.MemberID && eqPtr(ex.LocationID, e.LocationID) {
			return repository.ErrConflict
		}
	}
	e.ID = uint64(len(f.entries) + 1)
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeWaiting) List(_ context.Context) ([]model.WaitingView, error) {
	out := make([]model.WaitingView, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, model.WaitingView{WaitingEntry: e})
	}
	return out, nil
}

func (f *fakeWaiting) GetView(_ context.Context, id uint64) (*model.WaitingView, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return &model.WaitingView{WaitingEntry: e, MemberName: "someone"}, nil
		}
	}
	return nil, repository.ErrWaitingEntryNotFound
}

func eqPtr(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakeMembers struct {
	byID map[uint64]*model.Member
}

func (f *fakeMembers) GetByID(_ context.Context, id uint64) (*model.Member, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}
	return m, nil
}

type fakePublisher struct {
	events []queue.SubscriptionExpiredEvent
}

func (f *fakePublisher) PublishSubscriptionExpired(_ context.Context, ev queue.SubscriptionExpiredEvent) error {
	f.events = append(f.events, ev)
	return nil
}

// ----- helpers -----

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newFixture(subs ...*model.Subscription) (*Lifecycle, *fakeSeats, *fakeSubs, *fakeWaiting, *fakePublisher) {
	seats := &fakeSeats{missing: map[uint64]bool{}}
	sr := &fakeSubs{byID: map[uint64]*model.Subscription{}}
	for _, s := range subs {
		sr.byID[s.ID] = s
	}
	waiting := &fakeWaiting{}
	members := &fakeMembers{byID: map[uint64]*model.Member{
		7: {ID: 7, Name: "Asha", Email: "asha@example.com"},
		8: {ID: 8, Name: "Ravi", Email: "ravi@example.com"},
	}}
	pub := &fakePublisher{}
	return NewLifecycle(seats, sr, waiting, members, pub), seats, sr, waiting, pub
}

// ----- terminate -----

func TestTerminateExpiresAndFreesSeat(t *testing.T) {
	sub := &model.Subscription{ID: 1, MemberID: 7, SeatID: 42, Status: model.SubscriptionActive}
	lc, seats, sr, _, pub := newFixture(sub)

	err := lc.Terminate(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []uint64{1}, sr.expired)
	assert.Equal(t, []uint64{42}, seats.freed)
	assert.Empty(t, seats.occupied, "empty queue must leave the seat vacant")

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, uint64(1), ev.SubscriptionID)
	assert.Equal(t, uint64(42), ev.SeatID)
	assert.Nil(t, ev.ReassignedMemberID)
}

func TestTerminateDispatchesEarliestEntry(t *testing.T) {
	sub := &model.Subscription{ID: 1, MemberID: 7, SeatID: 42, Status: model.SubscriptionActive}
	lc, seats, _, waiting, pub := newFixture(sub)
	waiting.entries = []model.WaitingEntry{
		{ID: 11, MemberID: 8, RequestedDate: day("2026-02-01")},
		{ID: 12, MemberID: 7, RequestedDate: day("2026-01-15")},
	}

	err := lc.Terminate(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, seats.occupied, 1)
	got := seats.occupied[0]
	assert.Equal(t, uint64(42), got.seatID)
	assert.Equal(t, uint64(7), got.memberID, "earliest requested date wins")
	assert.Nil(t, got.subID, "dispatch assigns the seat without a subscription")

	assert.Equal(t, []uint64{12}, waiting.deleted)
	require.Len(t, waiting.entries, 1)
	assert.Equal(t, uint64(11), waiting.entries[0].ID, "the other entry stays queued")

	require.Len(t, pub.events, 1)
	require.NotNil(t, pub.events[0].ReassignedMemberID)
	assert.Equal(t, uint64(7), *pub.events[0].ReassignedMemberID)
}

func TestTerminateTieBreaksOnLowestID(t *testing.T) {
	sub := &model.Subscription{ID: 1, MemberID: 7, SeatID: 5}
	lc, seats, _, waiting, _ := newFixture(sub)
	same := day("2026-03-01")
	waiting.entries = []model.WaitingEntry{
		{ID: 30, MemberID: 8, RequestedDate: same},
		{ID: 20, MemberID: 7, RequestedDate: same},
	}

	require.NoError(t, lc.Terminate(context.Background(), 1))
	require.Len(t, seats.occupied, 1)
	assert.Equal(t, uint64(7), seats.occupied[0].memberID)
	assert.Equal(t, []uint64{20}, waiting.deleted)
}

func TestTerminateUnknownSubscription(t *testing.T) {
	lc, seats, sr, waiting, pub := newFixture()
	waiting.entries = []model.WaitingEntry{{ID: 1, MemberID: 8, RequestedDate: day("2026-01-01")}}

	err := lc.Terminate(context.Background(), 99)
	require.ErrorIs(t, err, repository.ErrSubscriptionNotFound)

	assert.Empty(t, sr.expired)
	assert.Empty(t, seats.freed)
	assert.Empty(t, seats.occupied)
	assert.Len(t, waiting.entries, 1, "queue untouched")
	assert.Empty(t, pub.events)
}

func TestTerminateMissingSeatSkipsDispatch(t *testing.T) {
	sub := &model.Subscription{ID: 3, MemberID: 7, SeatID: 404}
	lc, seats, sr, waiting, pub := newFixture(sub)
	seats.missing[404] = true
	waiting.entries = []model.WaitingEntry{{ID: 1, MemberID: 8, RequestedDate: day("2026-01-01")}}

	err := lc.Terminate(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []uint64{3}, sr.expired, "subscription still expires")
	assert.Empty(t, seats.occupied, "no seat to hand out")
	assert.Len(t, waiting.entries, 1, "queue untouched")
	assert.Len(t, pub.events, 1, "event still records the expiry")
}

func TestTerminateSurfacesWaitingDeleteFailure(t *testing.T) {
	sub := &model.Subscription{ID: 1, MemberID: 7, SeatID: 42}
	lc, seats, _, waiting, pub := newFixture(sub)
	waiting.entries = []model.WaitingEntry{{ID: 5, MemberID: 8, RequestedDate: day("2026-01-01")}}
	waiting.deleteErr = errors.New("connection reset")

	err := lc.Terminate(context.Background(), 1)
	require.Error(t, err)

	// The seat assignment already happened when the delete failed.
	require.Len(t, seats.occupied, 1)
	assert.Empty(t, pub.events, "no event for a failed run")
}

func TestTerminateAlreadyExpiredRerunsDispatch(t *testing.T) {
	sub := &model.Subscription{ID: 2, MemberID: 7, SeatID: 10, Status: model.SubscriptionExpired}
	lc, seats, sr, _, _ := newFixture(sub)

	require.NoError(t, lc.Terminate(context.Background(), 2))
	assert.Equal(t, []uint64{2}, sr.expired)
	assert.Equal(t, []uint64{10}, seats.freed)
}

func TestTerminateWithNilPublisher(t *testing.T) {
	sub := &model.Subscription{ID: 1, MemberID: 7, SeatID: 42}
	lc, _, _, _, _ := newFixture(sub)
	lc.Events = nil

	require.NoError(t, lc.Terminate(context.Background(), 1))
}

// ----- waiting list -----

func TestJoinWaitingListDefaultsRequestedDate(t *testing.T) {
	lc, _, _, waiting, _ := newFixture()

	view, err := lc.JoinWaitingList(context.Background(), &model.WaitingEntry{MemberID: 7})
	require.NoError(t, err)
	assert.False(t, view.RequestedDate.IsZero())
	require.Len(t, waiting.entries, 1)
}

func TestJoinWaitingListUnknownMember(t *testing.T) {
	lc, _, _, waiting, _ := newFixture()

	_, err := lc.JoinWaitingList(context.Background(), &model.WaitingEntry{MemberID: 999})
	require.ErrorIs(t, err, repository.ErrMemberNotFound)
	assert.Empty(t, waiting.entries)
}

func TestJoinWaitingListDuplicate(t *testing.T) {
	lc, _, _, _, _ := newFixture()

	_, err := lc.JoinWaitingList(context.Background(), &model.WaitingEntry{MemberID: 7, RequestedDate: day("2026-01-01")})
	require.NoError(t, err)

	_, err = lc.JoinWaitingList(context.Background(), &model.WaitingEntry{MemberID: 7, RequestedDate: day("2026-01-02")})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestJoinWaitingListSameMemberDifferentLocations(t *testing.T) {
	lc, _, _, waiting, _ := newFixture()
	locA, locB := uint64(1), uint64(2)

	_, err := lc.JoinWaitingList(context.Background(), &model.WaitingEntry{MemberID: 7, LocationID: &locA})
	require.NoError(t, err)
	_, err = lc.JoinWaitingList(context.Background(), &model.WaitingEntry{MemberID: 7, LocationID: &locB})
	require.NoError(t, err)
	assert.Len(t, waiting.entries, 2)
}
