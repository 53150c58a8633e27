package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/http/handlers"
	"github.com/campus-union/cms-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Roles          *handlers.RolesHandler
	Admins         *handlers.AdminsHandler
	News           *handlers.NewsHandler
	Leadership     *handlers.LeadershipHandler
	Gallery        *handlers.GalleryHandler
	Events         *handlers.EventsHandler
	Subscribers    *handlers.SubscribersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Static segments are registered
// before parameter segments so /slug/:slug style routes keep working.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/stats", cfg.Health.Stats)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Auth.Register)
	authGroup.Post("/users/login", cfg.Auth.LoginUser)
	authGroup.Get("/users/me", cfg.AuthMiddleware.RequireUser(), cfg.Auth.MeUser)
	authGroup.Post("/admin/login", cfg.Auth.LoginAdmin)
	authGroup.Get("/admin/me", cfg.AuthMiddleware.RequireAdmin(), cfg.Auth.MeAdmin)

	news := app.Group("/news")
	news.Get("/", cfg.News.List)
	news.Get("/slug/:slug", cfg.News.GetBySlug)
	news.Get("/:id", cfg.News.Get)

	leadership := app.Group("/leadership")
	leadership.Get("/", cfg.Leadership.List)
	leadership.Get("/structure", cfg.Leadership.Structure)
	leadership.Get("/years", cfg.Leadership.Years)
	leadership.Get("/enums", cfg.Leadership.Enums)
	leadership.Get("/:id", cfg.Leadership.Get)

	gallery := app.Group("/gallery")
	gallery.Get("/", cfg.Gallery.List)
	gallery.Get("/by-category", cfg.Gallery.ByCategory)
	gallery.Get("/categories", cfg.Gallery.Categories)
	gallery.Get("/years", cfg.Gallery.Years)
	gallery.Get("/:id", cfg.Gallery.Get)

	events := app.Group("/events")
	events.Get("/", cfg.Events.List)
	events.Get("/upcoming", cfg.Events.ListUpcoming)
	events.Get("/slug/:slug", cfg.Events.GetBySlug)
	events.Get("/:id", cfg.Events.Get)
	events.Post("/:id/register", cfg.AuthMiddleware.RequireUser(), cfg.Events.Register)
	events.Delete("/:id/register", cfg.AuthMiddleware.RequireUser(), cfg.Events.CancelRegistration)

	subscribers := app.Group("/subscribers")
	subscribers.Post("/subscribe", cfg.Subscribers.Subscribe)
	subscribers.Post("/unsubscribe/:email", cfg.Subscribers.Unsubscribe)

	admin := app.Group("/admin", cfg.AuthMiddleware.RequireAdmin())

	admin.Post("/roles", cfg.Roles.Create)
	admin.Get("/roles", cfg.Roles.List)
	admin.Get("/roles/:id", cfg.Roles.Get)
	admin.Put("/roles/:id", cfg.Roles.Update)
	admin.Delete("/roles/:id", cfg.Roles.Delete)

	admin.Post("/admins", cfg.Admins.Create)
	admin.Get("/admins", cfg.Admins.List)
	admin.Get("/admins/:id", cfg.Admins.Get)
	admin.Put("/admins/:id/role", cfg.Admins.AssignRole)

	admin.Post("/news", cfg.News.Create)
	admin.Get("/news", cfg.News.ListAdmin)
	admin.Get("/news/my", cfg.News.ListMine)
	admin.Put("/news/:id", cfg.News.Update)
	admin.Delete("/news/:id", cfg.News.Delete)

	admin.Post("/leadership", cfg.Leadership.Create)
	admin.Put("/leadership/reorder", cfg.Leadership.Reorder)
	admin.Put("/leadership/:id", cfg.Leadership.Update)
	admin.Delete("/leadership/:id", cfg.Leadership.Delete)

	admin.Post("/gallery", cfg.Gallery.Create)
	admin.Get("/gallery/summary", cfg.Gallery.Summary)
	admin.Put("/gallery/reorder", cfg.Gallery.Reorder)
	admin.Put("/gallery/:id", cfg.Gallery.Update)
	admin.Delete("/gallery/:id", cfg.Gallery.Delete)

	admin.Post("/events", cfg.Events.Create)
	admin.Get("/events/:id/registrations", cfg.Events.ListRegistrations)
	admin.Put("/events/:id", cfg.Events.Update)
	admin.Delete("/events/:id", cfg.Events.Delete)

	admin.Get("/subscribers", cfg.Subscribers.List)
	admin.Get("/subscribers/stats", cfg.Subscribers.Stats)
	admin.Get("/subscribers/search/:email", cfg.Subscribers.Search)
	admin.Get("/subscribers/:id", cfg.Subscribers.Get)
	admin.Put("/subscribers/:id", cfg.Subscribers.SetActive)
	admin.Delete("/subscribers/:id", cfg.Subscribers.Delete)
}
