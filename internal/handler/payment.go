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
)

// PaymentHandler records and lists payments against a subscription.
// Payments are append-only; corrections go through a new entry.
type PaymentHandler struct {
	Payments      *repository.PaymentRepo
	Subscriptions *repository.SubscriptionRepo
}

func NewPaymentHandler(payments *repository.PaymentRepo, subs *repository.SubscriptionRepo) *PaymentHandler {
	if payments == nil || subs == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: payments, Subscriptions: subs}
}

type paymentReq struct {
	AmountCents uint32 `json:"amount_cents" validate:"required,min=1"`
	Method      string `json:"method" validate:"required"` // UPI | CASH
	UPICode     string `json:"upi_code"`
	PaidAt      string `json:"paid_at"` // YYYY-MM-DD, defaults to now
}

// List handles GET /v1/subscriptions/:id/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Subscriptions.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load subscription"})
	}
	payments, err := h.Payments.ListBySubscription(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": payments})
}

// Create handles POST /v1/subscriptions/:id/payments. Each payment is
// issued a UUID receipt number.
func (h *PaymentHandler) Create(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method != model.PaymentUPI && method != model.PaymentCash {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "method must be UPI or CASH"})
	}
	paidAt := time.Now().UTC()
	if req.PaidAt != "" {
		t, err := time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paid_at, expected YYYY-MM-DD"})
		}
		paidAt = t
	}

	ctx := c.Request().Context()
	if _, err := h.Subscriptions.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load subscription"})
	}

	p := &model.Payment{
		SubscriptionID: id,
		AmountCents:    req.AmountCents,
		Method:         method,
		ReceiptNumber:  uuid.NewString(),
		PaidAt:         paidAt,
	}
	if method == model.PaymentUPI && strings.TrimSpace(req.UPICode) != "" {
		code := strings.TrimSpace(req.UPICode)
		p.UPICode = &code
	}
	if err := h.Payments.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": p})
}
