package routes

import (
	"time"

	"github.com/courier-app/courier-backend/internal/config"
	"github.com/courier-app/courier-backend/internal/handlers"
	"github.com/courier-app/courier-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	messageHandler *handlers.MessageHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

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

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Messaging (protected)
	messages := api.Group("/messages", middleware.JWTProtected(cfg))
	messages.Post("/", messageHandler.Send)
	messages.Get("/with/:user_id", messageHandler.Conversation)
	messages.Put("/:id/read", messageHandler.MarkRead)
	messages.Delete("/:id", messageHandler.Delete)

	// Blocks (protected)
	api.Post("/blocks", middleware.JWTProtected(cfg), messageHandler.BlockUser)
	api.Delete("/blocks/:id", middleware.JWTProtected(cfg), messageHandler.UnblockUser)

	// Reports — user endpoint (protected)
	api.Post("/reports", middleware.JWTProtected(cfg), reportHandler.CreateReport)

	// Moderation dashboard (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/reports", reportHandler.ListReports)
	// count before :id so the literal segment wins
	admin.Get("/reports/count", reportHandler.CountUnresolved)
	admin.Get("/reports/:id", reportHandler.GetReport)
	admin.Put("/reports/:id/resolve", reportHandler.ResolveReport)
}
