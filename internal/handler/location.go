package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// LocationHandler exposes CRUD endpoints for locations.
type LocationHandler struct {
	Locations *repository.LocationRepo
}

func NewLocationHandler(locations *repository.LocationRepo) *LocationHandler {
	if locations == nil {
		panic("nil repository passed to NewLocationHandler")
	}
	return &LocationHandler{Locations: locations}
}

type locationReq struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	IsActive *bool  `json:"is_active"` // update only
}

// List handles GET /v1/locations.
func (h *LocationHandler) List(c echo.Context) error {
	locations, err := h.Locations.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load locations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": locations})
}

// Get handles GET /v1/locations/:id.
func (h *LocationHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	l, err := h.Locations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load location"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": l})
}

// Create handles POST /v1/locations.
func (h *LocationHandler) Create(c echo.Context) error {
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	l := &model.Location{Name: req.Name, Address: req.Address}
	if err := h.Locations.Create(c.Request().Context(), l); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "location name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create location failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": l})
}

// Update handles PUT /v1/locations/:id.
func (h *LocationHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	ctx := c.Request().Context()
	l, err := h.Locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load location"})
	}
	l.Name = req.Name
	l.Address = req.Address
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	if err := h.Locations.Update(ctx, l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update location failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": l})
}

// Delete handles DELETE /v1/locations/:id. ADMIN only; locations that
// still have seats cannot be removed.
func (h *LocationHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	if err := h.Locations.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrLocationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "location still has seats"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete location failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
