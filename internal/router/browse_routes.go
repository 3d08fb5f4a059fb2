package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/handler"
	"github.com/rahulkg/reading-room-manager/internal/middleware"
	"github.com/rahulkg/reading-room-manager/internal/model"
)

// RegisterBrowse registers read endpoints available to every
// authenticated role. MEMBER accounts use these to check seat
// availability across locations and to file and track grievances;
// staff reach the same data through here as well. The seat and
// location listings sit behind the Redis response cache, since the
// front desk polls them constantly.
func RegisterBrowse(e *echo.Echo, seats *handler.SeatHandler, locations *handler.LocationHandler, grievances *handler.GrievanceHandler, waiting *handler.WaitingHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleMember),
	)

	g.GET("/seats", seats.List, cache)
	g.GET("/seats/:id", seats.Get)
	g.GET("/locations", locations.List, cache)
	g.GET("/locations/:id", locations.Get)

	// Grievances: members act on their own record via the member_id
	// claim; the handler widens the view for staff.
	g.GET("/grievances", grievances.List)
	g.POST("/grievances", grievances.Create)

	// Members queue themselves for a seat; staff queue anyone.
	g.POST("/waiting", waiting.Create)
}
