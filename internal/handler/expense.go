package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// ExpenseHandler records and lists operating costs per location.
type ExpenseHandler struct {
	Expenses  *repository.ExpenseRepo
	Locations *repository.LocationRepo
}

func NewExpenseHandler(expenses *repository.ExpenseRepo, locations *repository.LocationRepo) *ExpenseHandler {
	if expenses == nil || locations == nil {
		panic("nil repository passed to NewExpenseHandler")
	}
	return &ExpenseHandler{Expenses: expenses, Locations: locations}
}

type expenseReq struct {
	LocationID  uint64 `json:"location_id" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	AmountCents uint32 `json:"amount_cents" validate:"required,min=1"`
	IncurredAt  string `json:"incurred_at"` // YYYY-MM-DD, defaults to today
}

// List handles GET /v1/expenses?location_id=.
func (h *ExpenseHandler) List(c echo.Context) error {
	locationID, err := parseLocationQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
	}
	expenses, err := h.Expenses.ListByLocation(c.Request().Context(), locationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load expenses"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": expenses})
}

// Create handles POST /v1/expenses.
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req expenseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	incurred := time.Now().UTC()
	if req.IncurredAt != "" {
		t, err := time.Parse("2006-01-02", req.IncurredAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid incurred_at, expected YYYY-MM-DD"})
		}
		incurred = t
	}
	ctx := c.Request().Context()
	if _, err := h.Locations.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load location"})
	}
	e := &model.Expense{
		LocationID:  req.LocationID,
		Category:    req.Category,
		Description: req.Description,
		AmountCents: req.AmountCents,
		IncurredAt:  incurred,
	}
	if err := h.Expenses.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create expense failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": e})
}
