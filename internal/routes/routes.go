package routes

import (
	"time"

	"github.com/biostackhq/biostack/internal/config"
	"github.com/biostackhq/biostack/internal/handlers"
	"github.com/biostackhq/biostack/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	sectionHandler *handlers.SectionHandler,
	publicHandler *handlers.PublicHandler,
	dashboardHandler *handlers.DashboardHandler,
	feedbackHandler *handlers.FeedbackHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/themes", profileHandler.ListThemes)
	api.Post("/feedback", feedbackHandler.Create)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware per group so the
	// public routes below stay public
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Get("/me/details", authHandler.GetDetails)
	protected.Put("/me/details", authHandler.UpdateDetails)

	protected.Get("/profiles", profileHandler.List)
	protected.Post("/profiles", profileHandler.Create)
	protected.Post("/profiles/:id/activate", profileHandler.Activate)
	protected.Post("/profiles/:id/delete", profileHandler.Delete)
	protected.Put("/profiles/active", profileHandler.Update)
	protected.Put("/profiles/active/slug", profileHandler.UpdateSlug)
	protected.Post("/profiles/active/image", profileHandler.UploadImage)

	protected.Post("/theme", profileHandler.SetTheme)

	protected.Get("/sections", sectionHandler.List)
	protected.Post("/sections", sectionHandler.Upsert)
	protected.Post("/sections/reorder", sectionHandler.Reorder)
	protected.Get("/sections/prefill/personal", sectionHandler.Prefill)
	protected.Get("/sections/:id", sectionHandler.Get)
	protected.Post("/sections/:id/delete", sectionHandler.Delete)

	protected.Get("/dashboard", dashboardHandler.Stats)

	api.Get("/public/:username/:slug", publicHandler.RenderJSON)

	// Public site routes. The catch-all page route goes last so it cannot
	// shadow anything above.
	app.Static("/uploads", "./uploads")
	app.Get("/link-click/:section_id", publicHandler.LinkClick)
	app.Get("/themes/preview/:theme_id", publicHandler.PreviewTheme)
	app.Get("/:username/:slug", publicHandler.RenderProfile)
}
