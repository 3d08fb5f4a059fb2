package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/repository"
	"github.com/rahulkg/reading-room-manager/internal/service"
)

// SubscriptionHandler covers the enrollment and termination endpoints.
// Enrollment runs inside a single DB transaction: create the
// subscription, occupy the seat, record the initial payment.
// Termination delegates to the lifecycle service, which also drives
// the waiting-list dispatch.
type SubscriptionHandler struct {
	Subscriptions *repository.SubscriptionRepo
	Seats         *repository.SeatRepo
	Members       *repository.MemberRepo
	Payments      *repository.PaymentRepo
	Lifecycle     *service.Lifecycle
}

func NewSubscriptionHandler(subs *repository.SubscriptionRepo, seats *repository.SeatRepo, members *repository.MemberRepo, payments *repository.PaymentRepo, lifecycle *service.Lifecycle) *SubscriptionHandler {
	if subs == nil || seats == nil || members == nil || payments == nil || lifecycle == nil {
		panic("nil dependency passed to NewSubscriptionHandler")
	}
	return &SubscriptionHandler{
		Subscriptions: subs,
		Seats:         seats,
		Members:       members,
		Payments:      payments,
		Lifecycle:     lifecycle,
	}
}

type enrollReq struct {
	MemberID      uint64 `json:"member_id" validate:"required"`
	SeatID        uint64 `json:"seat_id" validate:"required"`
	StartDate     string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate       string `json:"end_date" validate:"required"`   // YYYY-MM-DD
	Duration      string `json:"duration" validate:"required"`   // e.g. "3 months"
	AmountCents   uint32 `json:"amount_cents" validate:"required,min=1"`
	PaidCents     uint32 `json:"paid_cents"`     // initial payment; 0 records none
	PaymentMethod string `json:"payment_method"` // UPI | CASH, required when paid_cents > 0
	UPICode       string `json:"upi_code"`
}

// Enroll handles POST /v1/subscriptions. The seat must exist and be
// vacant; the member must exist. The seat row is locked for the
// duration of the transaction so two enrollments cannot both take it.
func (h *SubscriptionHandler) Enroll(c echo.Context) error {
	var req enrollReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, expected YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date, expected YYYY-MM-DD"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be after start_date"})
	}
	method := strings.ToUpper(strings.TrimSpace(req.PaymentMethod))
	if req.PaidCents > 0 && method != model.PaymentUPI && method != model.PaymentCash {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method must be UPI or CASH"})
	}

	ctx := c.Request().Context()
	if _, err := h.Members.GetByID(ctx, req.MemberID); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load member"})
	}

	tx, err := h.Subscriptions.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	seat, err := h.Seats.GetForUpdateTx(ctx, tx, req.SeatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat"})
	}
	if seat.Status != model.SeatVacant {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat is occupied"})
	}

	sub := &model.Subscription{
		MemberID:         req.MemberID,
		SeatID:           req.SeatID,
		StartDate:        start,
		EndDate:          end,
		Duration:         req.Duration,
		TotalAmountCents: req.AmountCents,
	}
	if err := h.Subscriptions.CreateTx(ctx, tx, sub); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create subscription"})
	}
	if err := h.Seats.OccupyTx(ctx, tx, seat.ID, req.MemberID, &sub.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to occupy seat"})
	}

	var payment *model.Payment
	if req.PaidCents > 0 {
		payment = &model.Payment{
			SubscriptionID: sub.ID,
			AmountCents:    req.PaidCents,
			Method:         method,
			ReceiptNumber:  uuid.NewString(),
			PaidAt:         time.Now().UTC(),
		}
		if method == model.PaymentUPI && strings.TrimSpace(req.UPICode) != "" {
			code := strings.TrimSpace(req.UPICode)
			payment.UPICode = &code
		}
		if err := h.Payments.CreateTx(ctx, tx, payment); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	resp := echo.Map{"subscription": sub}
	if payment != nil {
		resp["payment"] = payment
	}
	return c.JSON(http.StatusCreated, resp)
}

// Terminate handles PUT /v1/subscriptions/:id. The subscription is
// expired, its seat freed, and the freed seat dispatched to the head
// of the waiting list. The response is a plain confirmation message.
func (h *SubscriptionHandler) Terminate(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription id"})
	}
	if err := h.Lifecycle.Terminate(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "terminate failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "subscription terminated"})
}

// Get handles GET /v1/subscriptions/:id.
func (h *SubscriptionHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription id"})
	}
	sub, err := h.Subscriptions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load subscription"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": sub})
}
