package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campushelp/helpdesk/internal/api/http/handlers"
	"github.com/campushelp/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Tickets         *handlers.TicketsHandler
	Staff           *handlers.StaffHandler
	StaffTickets    *handlers.StaffTicketsHandler
	StaffMiddleware *auth.StaffMiddleware
	SubmitLimiter   fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	if cfg.SubmitLimiter != nil {
		tickets.Post("/", cfg.SubmitLimiter, cfg.Tickets.Submit)
	} else {
		tickets.Post("/", cfg.Tickets.Submit)
	}
	tickets.Get("/:reference", cfg.Tickets.Status)

	authGroup := app.Group("/auth/staff")
	authGroup.Post("/login", cfg.Staff.Login)
	authGroup.Post("/logout", cfg.Staff.Logout)

	staff := app.Group("/staff", cfg.StaffMiddleware.Handle)
	staff.Get("/tickets", cfg.StaffTickets.List)
	staff.Get("/tickets/:id", cfg.StaffTickets.Get)
	staff.Patch("/tickets/:id/status", cfg.StaffTickets.UpdateStatus)
	staff.Post("/tickets/:id/notes", cfg.StaffTickets.AddNote)
	staff.Get("/tickets/:id/remote-access", cfg.StaffTickets.RemoteAccess)
}
