package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// InventoryHandler manages equipment records per location.
type InventoryHandler struct {
	Inventory *repository.InventoryRepo
	Locations *repository.LocationRepo
}

func NewInventoryHandler(inventory *repository.InventoryRepo, locations *repository.LocationRepo) *InventoryHandler {
	if inventory == nil || locations == nil {
		panic("nil repository passed to NewInventoryHandler")
	}
	return &InventoryHandler{Inventory: inventory, Locations: locations}
}

type inventoryReq struct {
	LocationID    uint64 `json:"location_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Quantity      uint32 `json:"quantity" validate:"required,min=1"`
	UnitCostCents uint32 `json:"unit_cost_cents"`
	PurchasedAt   string `json:"purchased_at"` // YYYY-MM-DD, defaults to today
}

type quantityReq struct {
	Quantity uint32 `json:"quantity"`
}

// List handles GET /v1/inventory?location_id=.
func (h *InventoryHandler) List(c echo.Context) error {
	locationID, err := parseLocationQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
	}
	items, err := h.Inventory.ListByLocation(c.Request().Context(), locationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load inventory"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create handles POST /v1/inventory.
func (h *InventoryHandler) Create(c echo.Context) error {
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	purchased := time.Now().UTC()
	if req.PurchasedAt != "" {
		t, err := time.Parse("2006-01-02", req.PurchasedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid purchased_at, expected YYYY-MM-DD"})
		}
		purchased = t
	}
	ctx := c.Request().Context()
	if _, err := h.Locations.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load location"})
	}
	it := &model.InventoryItem{
		LocationID:    req.LocationID,
		Name:          req.Name,
		Quantity:      req.Quantity,
		UnitCostCents: req.UnitCostCents,
		PurchasedAt:   purchased,
	}
	if err := h.Inventory.Create(ctx, it); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create inventory item failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": it})
}

// UpdateQuantity handles PUT /v1/inventory/:id, adjusting stock after
// purchases or disposals.
func (h *InventoryHandler) UpdateQuantity(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inventory item id"})
	}
	var req quantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Inventory.UpdateQuantity(c.Request().Context(), id, req.Quantity); err != nil {
		if errors.Is(err, repository.ErrInventoryItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update inventory failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "quantity": req.Quantity})
}

// Delete handles DELETE /v1/inventory/:id.
func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inventory item id"})
	}
	if err := h.Inventory.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrInventoryItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete inventory item failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
