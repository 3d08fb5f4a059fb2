package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/queue"
	"github.com/rahulkg/reading-room-manager/internal/repository"
	"github.com/rahulkg/reading-room-manager/internal/service"
)

// In-memory stores backing the lifecycle service for handler tests.

type memSeats struct{ freed, occupied []uint64 }

func (m *memSeats) Free(_ context.Context, seatID uint64) error {
	m.freed = append(m.freed, seatID)
	return nil
}
func (m *memSeats) Occupy(_ context.Context, seatID, _ uint64, _ *uint64) error {
	m.occupied = append(m.occupied, seatID)
	return nil
}

type memSubs struct{ byID map[uint64]*model.Subscription }

func (m *memSubs) GetByID(_ context.Context, id uint64) (*model.Subscription, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrSubscriptionNotFound
	}
	return s, nil
}
func (m *memSubs) MarkExpired(_ context.Context, id uint64) error {
	if s, ok := m.byID[id]; ok {
		s.Status = model.SubscriptionExpired
	}
	return nil
}

type memWaiting struct{ entries []model.WaitingEntry }

func (m *memWaiting) Next(_ context.Context) (*model.WaitingEntry, error) {
	if len(m.entries) == 0 {
		return nil, repository.ErrWaitingEntryNotFound
	}
	e := m.entries[0]
	return &e, nil
}
func (m *memWaiting) Delete(_ context.Context, id uint64) error {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrWaitingEntryNotFound
}
func (m *memWaiting) Create(_ context.Context, e *model.WaitingEntry) error {
	for _, ex := range m.entries {
		if ex.MemberID == e.MemberID {
			return repository.ErrConflict
		}
	}
	e.ID = uint64(len(m.entries) + 1)
	m.entries = append(m.entries, *e)
	return nil
}
func (m *memWaiting) List(_ context.Context) ([]model.WaitingView, error) {
	out := make([]model.WaitingView, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, model.WaitingView{WaitingEntry: e, MemberName: "Asha"})
	}
	return out, nil
}
func (m *memWaiting) GetView(_ context.Context, id uint64) (*model.WaitingView, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return &model.WaitingView{WaitingEntry: e, MemberName: "Asha", MemberEmail: "asha@example.com"}, nil
		}
	}
	return nil, repository.ErrWaitingEntryNotFound
}

type memMembers struct{ byID map[uint64]*model.Member }

func (m *memMembers) GetByID(_ context.Context, id uint64) (*model.Member, error) {
	mm, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}
	return mm, nil
}

type nopPublisher struct{}

func (nopPublisher) PublishSubscriptionExpired(context.Context, queue.SubscriptionExpiredEvent) error {
	return nil
}

func newTestLifecycle(subs map[uint64]*model.Subscription) (*service.Lifecycle, *memWaiting) {
	waiting := &memWaiting{}
	lc := service.NewLifecycle(
		&memSeats{},
		&memSubs{byID: subs},
		waiting,
		&memMembers{byID: map[uint64]*model.Member{7: {ID: 7, Name: "Asha", Email: "asha@example.com"}}},
		nopPublisher{},
	)
	return lc, waiting
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// asRole stands in for the JWT middleware, seeding the identity keys
// the handlers read from context.
func asRole(role string, memberID uint64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("role", role)
			if memberID != 0 {
				c.Set("member_id", memberID)
			}
			return next(c)
		}
	}
}

func TestWaitingCreateAndList(t *testing.T) {
	lc, _ := newTestLifecycle(nil)
	h := &WaitingHandler{Lifecycle: lc, Locations: &repository.LocationRepo{}}

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/waiting", h.Create, asRole("MANAGER", 0))
	e.GET("/v1/waiting", h.List)

	rec := doJSON(e, http.MethodPost, "/v1/waiting", `{"member_id":7,"requested_date":"2026-02-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"member_name":"Asha"`)

	rec = doJSON(e, http.MethodGet, "/v1/waiting", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"member_id":7`)
}

func TestWaitingCreateRequiresMemberID(t *testing.T) {
	lc, _ := newTestLifecycle(nil)
	h := &WaitingHandler{Lifecycle: lc, Locations: &repository.LocationRepo{}}

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/waiting", h.Create, asRole("MANAGER", 0))

	rec := doJSON(e, http.MethodPost, "/v1/waiting", `{"requested_date":"2026-02-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWaitingCreateDuplicateConflict(t *testing.T) {
	lc, _ := newTestLifecycle(nil)
	h := &WaitingHandler{Lifecycle: lc, Locations: &repository.LocationRepo{}}

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/waiting", h.Create, asRole("MANAGER", 0))

	rec := doJSON(e, http.MethodPost, "/v1/waiting", `{"member_id":7}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(e, http.MethodPost, "/v1/waiting", `{"member_id":7}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWaitingCreateUnknownMember(t *testing.T) {
	lc, _ := newTestLifecycle(nil)
	h := &WaitingHandler{Lifecycle: lc, Locations: &repository.LocationRepo{}}

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/waiting", h.Create, asRole("MANAGER", 0))

	rec := doJSON(e, http.MethodPost, "/v1/waiting", `{"member_id":999}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWaitingCreateMemberUsesOwnClaim(t *testing.T) {
	lc, waiting := newTestLifecycle(nil)
	h := &WaitingHandler{Lifecycle: lc, Locations: &repository.LocationRepo{}}

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/waiting", h.Create, asRole("MEMBER", 7))

	// member_id in the body is ignored; the claim wins.
	rec := doJSON(e, http.MethodPost, "/v1/waiting", `{"member_id":999}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, waiting.entries, 1)
	assert.Equal(t, uint64(7), waiting.entries[0].MemberID)
}

func TestWaitingCreateMemberWithoutLink(t *testing.T) {
	lc, _ := newTestLifecycle(nil)
	h := &WaitingHandler{Lifecycle: lc, Locations: &repository.LocationRepo{}}

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/waiting", h.Create, asRole("MEMBER", 0))

	rec := doJSON(e, http.MethodPost, "/v1/waiting", `{"member_id":7}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWaitingCreateRejectsBadPaymentMethod(t *testing.T) {
	lc, _ := newTestLifecycle(nil)
	h := &WaitingHandler{Lifecycle: lc, Locations: &repository.LocationRepo{}}

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/waiting", h.Create, asRole("MANAGER", 0))

	rec := doJSON(e, http.MethodPost, "/v1/waiting", `{"member_id":7,"payment_method":"CARD"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTerminateEndpoint(t *testing.T) {
	subs := map[uint64]*model.Subscription{
		1: {ID: 1, MemberID: 7, SeatID: 42, Status: model.SubscriptionActive},
	}
	lc, waiting := newTestLifecycle(subs)
	waiting.entries = []model.WaitingEntry{{ID: 3, MemberID: 7}}
	h := &SubscriptionHandler{Lifecycle: lc}

	e := echo.New()
	e.Validator = NewValidator()
	e.PUT("/v1/subscriptions/:id", h.Terminate)

	rec := doJSON(e, http.MethodPut, "/v1/subscriptions/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "subscription terminated")
	assert.Equal(t, model.SubscriptionExpired, subs[1].Status)
	assert.Empty(t, waiting.entries, "head of the queue consumed")
}

func TestTerminateEndpointNotFound(t *testing.T) {
	lc, _ := newTestLifecycle(nil)
	h := &SubscriptionHandler{Lifecycle: lc}

	e := echo.New()
	e.Validator = NewValidator()
	e.PUT("/v1/subscriptions/:id", h.Terminate)

	rec := doJSON(e, http.MethodPut, "/v1/subscriptions/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPut, "/v1/subscriptions/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
