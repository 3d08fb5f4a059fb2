package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/model"
	"github.com/rahulkg/reading-room-manager/internal/repository"
)

// GrievanceHandler handles member complaints. MEMBER accounts act on
// their own member record via the member_id token claim; staff may act
// for any member and see the full list.
type GrievanceHandler struct {
	Grievances *repository.GrievanceRepo
	Members    *repository.MemberRepo
}

func NewGrievanceHandler(grievances *repository.GrievanceRepo, members *repository.MemberRepo) *GrievanceHandler {
	if grievances == nil || members == nil {
		panic("nil repository passed to NewGrievanceHandler")
	}
	return &GrievanceHandler{Grievances: grievances, Members: members}
}

type grievanceReq struct {
	MemberID    uint64 `json:"member_id"` // staff only; members use their token claim
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type resolveReq struct {
	Resolution string `json:"resolution" validate:"required"`
}

// List handles GET /v1/grievances. Staff see every grievance; MEMBER
// accounts only their own.
func (h *GrievanceHandler) List(c echo.Context) error {
	var memberID uint64
	if !isStaff(c) {
		mid, ok := getMemberID(c)
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "account is not linked to a member record"})
		}
		memberID = mid
	}
	grievances, err := h.Grievances.List(c.Request().Context(), memberID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load grievances"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": grievances})
}

// Create handles POST /v1/grievances.
func (h *GrievanceHandler) Create(c echo.Context) error {
	var req grievanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	memberID := req.MemberID
	if !isStaff(c) {
		mid, ok := getMemberID(c)
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "account is not linked to a member record"})
		}
		memberID = mid
	}
	if memberID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "member_id required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load member"})
	}
	g := &model.Grievance{
		MemberID:    memberID,
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.Grievances.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create grievance failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": g})
}

// Resolve handles PUT /v1/grievances/:id/resolve. Staff only.
func (h *GrievanceHandler) Resolve(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid grievance id"})
	}
	var req resolveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}
	if err := h.Grievances.Resolve(c.Request().Context(), id, strings.TrimSpace(req.Resolution)); err != nil {
		if errors.Is(err, repository.ErrGrievanceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "grievance not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve grievance failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "grievance resolved"})
}
