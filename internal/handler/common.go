package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64. JWT numeric claims arrive as float64; older middleware may
// store other numeric types, so all are handled.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getMemberID extracts the member_id claim set for MEMBER accounts.
// Staff tokens carry no member_id; ok is false for them.
func getMemberID(c echo.Context) (uint64, bool) {
	v := c.Get("member_id")
	switch t := v.(type) {
	case uint64:
		return t, true
	case float64:
		if t > 0 {
			return uint64(t), true
		}
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// isStaff reports whether the authenticated caller holds a staff role.
func isStaff(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "ADMIN" || role == "MANAGER"
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseLocationQuery parses the optional location_id query parameter;
// 0 means no filter.
func parseLocationQuery(c echo.Context) (uint64, error) {
	raw := c.QueryParam("location_id")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid location_id")
	}
	return id, nil
}
