package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/repository"
	"github.com/rahulkg/reading-room-manager/internal/service"
)

// WaitingHandler exposes the waiting list: staff add members when no
// seat is free and review the queue while planning allocations.
type WaitingHandler struct {
	Lifecycle *service.Lifecycle
	Locations *repository.LocationRepo
}

func NewWaitingHandler(lifecycle *service.Lifecycle, locations *repository.LocationRepo) *WaitingHandler {
	if lifecycle == nil || locations == nil {
		panic("nil dependency passed to NewWaitingHandler")
	}
	return &WaitingHandler{Lifecycle: lifecycle, Locations: locations}
}

type waitingReq struct {
	MemberID      uint64  `json:"member_id" validate:"required"`
	LocationID    *uint64 `json:"location_id"`
	RequestedDate string  `json:"requested_date"` // YYYY-MM-DD, defaults to today
	StartDate     string  `json:"start_date"`     // YYYY-MM-DD
	Duration      *string `json:"duration"`
	AmountCents   *uint32 `json:"amount_cents"`
	PaymentMethod *string `json:"payment_method"` // UPI | CASH
	UPICode       *string `json:"upi_code"`
}

// List handles GET /v1/waiting, newest requests first.
func (h *WaitingHandler) List(c echo.Context) error {
	views, err := h.Lifecycle.ListWaiting(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load waiting list"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// Create handles POST /v1/waiting. Staff queue any member by id;
// MEMBER accounts queue themselves via the member_id token claim. A
// member holds at most one entry per preferred location; duplicates
// are rejected with 409.
func (h *WaitingHandler) Create(c echo.Context) error {
	var req waitingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !isStaff(c) {
		mid, ok := getMemberID(c)
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "account is not linked to a member record"})
		}
		req.MemberID = mid
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	if req.PaymentMethod != nil {
		m := strings.ToUpper(strings.TrimSpace(*req.PaymentMethod))
		if m != model.PaymentUPI && m != model.PaymentCash {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method must be UPI or CASH"})
		}
		req.PaymentMethod = &m
	}

	entry := &model.WaitingEntry{
		MemberID:      req.MemberID,
		LocationID:    req.LocationID,
		Duration:      req.Duration,
		AmountCents:   req.AmountCents,
		PaymentMethod: req.PaymentMethod,
		UPICode:       req.UPICode,
	}
	if req.RequestedDate != "" {
		t, err := time.Parse("2006-01-02", req.RequestedDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid requested_date, expected YYYY-MM-DD"})
		}
		entry.RequestedDate = t
	}
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, expected YYYY-MM-DD"})
		}
		entry.StartDate = &t
	}

	ctx := c.Request().Context()
	if req.LocationID != nil {
		if _, err := h.Locations.GetByID(ctx, *req.LocationID); err != nil {
			if errors.Is(err, repository.ErrLocationNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load location"})
		}
	}

	view, err := h.Lifecycle.JoinWaitingList(ctx, entry)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "member already on the waiting list for this location"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "join waiting list failed"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": view})
}

// Delete handles DELETE /v1/waiting/:id, removing an entry without
// assigning a seat (e.g. the member withdrew).
func (h *WaitingHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid waiting entry id"})
	}
	if err := h.Lifecycle.Waiting.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrWaitingEntryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waiting entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete waiting entry failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
