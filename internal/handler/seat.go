package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// SeatHandler exposes the seat registry over HTTP: listing with member
// and subscription summaries, and bulk creation of numbered seats for
// a location.
type SeatHandler struct {
	Seats     *repository.SeatRepo
	Locations *repository.LocationRepo
}

func NewSeatHandler(seats *repository.SeatRepo, locations *repository.LocationRepo) *SeatHandler {
	if seats == nil || locations == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats, Locations: locations}
}

// List handles GET /v1/seats?location_id=. Every seat row carries the
// assigned member's name and the backing subscription's end date and
// status so expiries are visible at a glance.
func (h *SeatHandler) List(c echo.Context) error {
	locationID, err := parseLocationQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
	}
	views, err := h.Seats.ListByLocation(c.Request().Context(), locationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// Get handles GET /v1/seats/:id.
func (h *SeatHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	s, err := h.Seats.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": s})
}

type createSeatsReq struct {
	LocationID uint64 `json:"location_id" validate:"required"`
	FromNumber uint32 `json:"from_number" validate:"required,min=1"`
	ToNumber   uint32 `json:"to_number" validate:"required,min=1"`
}

// CreateBulk handles POST /v1/seats. It creates a numbered run of
// vacant seats at a location, e.g. {"location_id":1,"from_number":1,
// "to_number":40}.
func (h *SeatHandler) CreateBulk(c echo.Context) error {
	var req createSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	if req.ToNumber < req.FromNumber {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to_number must be >= from_number"})
	}
	ctx := c.Request().Context()
	if _, err := h.Locations.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load location"})
	}
	if err := h.Seats.CreateBulk(ctx, req.LocationID, req.FromNumber, req.ToNumber); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat numbers already exist at this location"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seats failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"location_id": req.LocationID,
		"created":     req.ToNumber - req.FromNumber + 1,
	})
}
