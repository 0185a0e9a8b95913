package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/api/http/handlers"
	"github.com/spec-kit/studypay-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	Orders         *handlers.OrdersHandler
	AdminOrders    *handlers.AdminOrdersHandler
	Owner          *handlers.OwnerHandler
	Catalog        *handlers.CatalogHandler
	AI             *handlers.AIHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/admin/login", cfg.Admin.Login)
	authGroup.Post("/password/reset", cfg.Users.ResetPassword)
	authGroup.Post("/admin/check-role", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Admin.CheckRole)

	app.Get("/categories", cfg.Catalog.List)
	app.Get("/categories/:id", cfg.Catalog.Get)

	me := app.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireRole())
	me.Get("/", cfg.Users.Me)
	me.Get("/telegram", cfg.Users.MyTelegram)
	me.Get("/verification", cfg.Users.VerificationStatus)
	me.Post("/verification/send", cfg.Users.SendVerification)
	me.Post("/verification/confirm", cfg.Users.ConfirmVerification)
	me.Post("/bot-membership", cfg.Users.BotMembership)

	// Order routes live at the root, so they carry the auth chain per route
	// instead of through an empty-prefix group that would run for every
	// later-registered path as well.
	requireAuth := cfg.AuthMiddleware.Handle
	anyRole := auth.RequireRole()
	app.Post("/order", requireAuth, anyRole, cfg.Orders.Create)
	app.Get("/orders", requireAuth, anyRole, cfg.Orders.ListMine)
	app.Get("/order/:id", requireAuth, anyRole, cfg.Orders.Detail)
	app.Post("/order/cancel/:id", requireAuth, anyRole, cfg.Orders.Cancel)
	app.Put("/order/update/:id", requireAuth, anyRole, cfg.Orders.Update)
	app.Post("/ai/request", requireAuth, anyRole, cfg.AI.Generate)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	admin.Get("/orders", cfg.AdminOrders.ListPaid)
	admin.Get("/orders/work", cfg.AdminOrders.ListWork)
	admin.Get("/orders/notification/:id", cfg.AdminOrders.Notification)
	admin.Get("/orders/:id", cfg.AdminOrders.Detail)
	admin.Post("/orders/take/:id", cfg.AdminOrders.Take)
	admin.Patch("/orders/status", cfg.AdminOrders.Transition)
	admin.Patch("/orders/status/override", auth.RequireOwner(), cfg.AdminOrders.Override)
	admin.Post("/categories", auth.RequireOwner(), cfg.Catalog.Create)

	owner := app.Group("/owner", cfg.AuthMiddleware.Handle, auth.RequireOwner())
	owner.Get("/users", cfg.Owner.ListUsers)
	owner.Get("/users/:id", cfg.Owner.GetUser)
	owner.Put("/users/:id", cfg.Owner.UpdateUser)
	owner.Get("/users/:id/orders", cfg.Owner.UserOrders)
}
