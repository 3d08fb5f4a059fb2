package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// MemberHandler exposes CRUD endpoints for members. All routes are
// staff-only; registration of login accounts is a separate concern.
type MemberHandler struct {
	Members       *repository.MemberRepo
	Subscriptions *repository.SubscriptionRepo
}

func NewMemberHandler(members *repository.MemberRepo, subs *repository.SubscriptionRepo) *MemberHandler {
	if members == nil || subs == nil {
		panic("nil repository passed to NewMemberHandler")
	}
	return &MemberHandler{Members: members, Subscriptions: subs}
}

type memberReq struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required"`
	Address  *string `json:"address"`
	JoinedAt string  `json:"joined_at"` // YYYY-MM-DD, defaults to today
	IsActive *bool   `json:"is_active"` // update only; ignored on create
}

// List handles GET /v1/members.
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.Members.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load members"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": members})
}

// Get handles GET /v1/members/:id.
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	m, err := h.Members.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load member"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": m})
}

// Create handles POST /v1/members.
func (h *MemberHandler) Create(c echo.Context) error {
	var req memberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	joined := time.Now().UTC()
	if req.JoinedAt != "" {
		t, err := time.Parse("2006-01-02", req.JoinedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid joined_at, expected YYYY-MM-DD"})
		}
		joined = t
	}
	m := &model.Member{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		JoinedAt: joined,
	}
	if err := h.Members.Create(c.Request().Context(), m); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create member failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": m})
}

// Update handles PUT /v1/members/:id.
func (h *MemberHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	var req memberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	ctx := c.Request().Context()
	m, err := h.Members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load member"})
	}
	m.Name = req.Name
	m.Email = req.Email
	m.Phone = req.Phone
	m.Address = req.Address
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := h.Members.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update member failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": m})
}

// Delete handles DELETE /v1/members/:id. Members holding an active
// subscription cannot be removed.
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	if err := h.Members.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "member has an active subscription"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete member failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSubscriptions handles GET /v1/members/:id/subscriptions.
func (h *MemberHandler) ListSubscriptions(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Members.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load member"})
	}
	subs, err := h.Subscriptions.ListByMember(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load subscriptions"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": subs})
}
