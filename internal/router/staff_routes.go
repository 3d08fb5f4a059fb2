package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/handler"
	"github.com/rahulkg/reading-room-manager/internal/middleware"
	"github.com/rahulkg/reading-room-manager/internal/model"
)

// StaffHandlers bundles the handlers mounted on the staff route group
// so RegisterStaff keeps a manageable signature.
type StaffHandlers struct {
	Members       *handler.MemberHandler
	Seats         *handler.SeatHandler
	Subscriptions *handler.SubscriptionHandler
	Payments      *handler.PaymentHandler
	Waiting       *handler.WaitingHandler
	Locations     *handler.LocationHandler
	Inventory     *handler.InventoryHandler
	Expenses      *handler.ExpenseHandler
	Grievances    *handler.GrievanceHandler
}

// RegisterStaff registers staff-scoped endpoints under /v1. All routes
// require a valid JWT and the ADMIN or MANAGER role. Location deletion
// is ADMIN only and registered on its own group.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager),
	)

	// ---- Members ----
	g.GET("/members", h.Members.List)
	g.POST("/members", h.Members.Create)
	g.GET("/members/:id", h.Members.Get)
	g.PUT("/members/:id", h.Members.Update)
	g.DELETE("/members/:id", h.Members.Delete)
	g.GET("/members/:id/subscriptions", h.Members.ListSubscriptions)

	// ---- Seats ----
	g.POST("/seats", h.Seats.CreateBulk)

	// ---- Subscriptions ----
	g.POST("/subscriptions", h.Subscriptions.Enroll)
	g.GET("/subscriptions/:id", h.Subscriptions.Get)
	g.PUT("/subscriptions/:id", h.Subscriptions.Terminate)
	g.GET("/subscriptions/:id/payments", h.Payments.List)
	g.POST("/subscriptions/:id/payments", h.Payments.Create)

	// ---- Waiting list ----
	// POST /v1/waiting is on the browse group so members can queue
	// themselves; review and removal stay with staff.
	g.GET("/waiting", h.Waiting.List)
	g.DELETE("/waiting/:id", h.Waiting.Delete)

	// ---- Locations ----
	g.POST("/locations", h.Locations.Create)
	g.PUT("/locations/:id", h.Locations.Update)

	// ---- Inventory ----
	g.GET("/inventory", h.Inventory.List)
	g.POST("/inventory", h.Inventory.Create)
	g.PUT("/inventory/:id", h.Inventory.UpdateQuantity)
	g.DELETE("/inventory/:id", h.Inventory.Delete)

	// ---- Expenses ----
	g.GET("/expenses", h.Expenses.List)
	g.POST("/expenses", h.Expenses.Create)

	// ---- Grievances ----
	g.PUT("/grievances/:id/resolve", h.Grievances.Resolve)

	// ---- ADMIN only ----
	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	admin.DELETE("/locations/:id", h.Locations.Delete)
}
