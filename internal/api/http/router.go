package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-portal/internal/api/http/handlers"
	"github.com/spec-kit/gym-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Accounts       *handlers.AccountsHandler
	Courses        *handlers.CoursesHandler
	Plans          *handlers.PlansHandler
	Products       *handlers.ProductsHandler
	Access         *handlers.AccessHandler
	Programs       *handlers.ProgramsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireMember(), cfg.Auth.Me)

	member := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireMember())
	member.Get("/courses", cfg.Courses.List)
	member.Get("/courses/:id", cfg.Courses.Get)
	member.Get("/plans", cfg.Plans.List)
	member.Get("/plans/:id", cfg.Plans.Get)
	member.Get("/shop/products", cfg.Products.List)
	member.Get("/shop/products/:id", cfg.Products.Get)
	member.Get("/me/courses", cfg.Dashboard.Courses)
	member.Get("/me/subscription", cfg.Dashboard.Subscription)
	member.Get("/me/program", cfg.Dashboard.Program)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())

	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Put("/users/:id", cfg.Users.Update)
	admin.Delete("/users/:id", cfg.Users.Delete)

	admin.Post("/users/:id/overdue", cfg.Accounts.MarkOverdue)
	admin.Post("/users/:id/cancel", cfg.Accounts.Cancel)
	admin.Post("/users/:id/reactivate", cfg.Accounts.Reactivate)
	admin.Post("/users/:id/suspend", cfg.Accounts.Suspend)
	admin.Post("/users/:id/disable", cfg.Accounts.Disable)
	admin.Post("/users/:id/subscription", cfg.Accounts.AssignSubscription)
	admin.Get("/users/:id/subscription", cfg.Accounts.CurrentSubscription)
	admin.Get("/kpi/subscriptions", cfg.Accounts.KPI)

	admin.Post("/courses", cfg.Courses.Create)
	admin.Put("/courses/:id", cfg.Courses.Update)
	admin.Delete("/courses/:id", cfg.Courses.Delete)

	admin.Post("/plans", cfg.Plans.Create)
	admin.Put("/plans/:id", cfg.Plans.Update)
	admin.Delete("/plans/:id", cfg.Plans.Delete)

	admin.Post("/products", cfg.Products.Create)
	admin.Put("/products/:id", cfg.Products.Update)
	admin.Delete("/products/:id", cfg.Products.Delete)

	admin.Put("/access", cfg.Access.Set)
	admin.Get("/access/overrides", cfg.Access.ListOverrides)
	admin.Get("/access/:userID/:courseID", cfg.Access.Resolve)
	admin.Delete("/access/:userID/:courseID", cfg.Access.Remove)
	admin.Get("/users/:id/access", cfg.Access.ListForUser)

	admin.Get("/programs", cfg.Programs.List)
	admin.Post("/programs", cfg.Programs.Create)
	admin.Get("/programs/:id", cfg.Programs.Get)
	admin.Delete("/programs/:id", cfg.Programs.Delete)
	admin.Put("/users/:id/program", cfg.Programs.Assign)
	admin.Delete("/users/:id/program", cfg.Programs.Unassign)
}
