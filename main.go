// main.go
package main

import (
	"log"
	"os"
	"time"

	"pickleball/database"
	"pickleball/handlers"
	"pickleball/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	database.InitDB()
	handlers.InitHandlers()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)

	// User profile routes
	userGroup := api.Group("/user")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/profile", handlers.GetProfile)
	userGroup.Put("/profile", handlers.UpdateProfile)
	userGroup.Put("/password", handlers.ChangePassword)

	// Group routes
	groupGroup := api.Group("/groups")
	groupGroup.Use(middleware.AuthMiddleware)
	groupGroup.Get("/my", handlers.GetMyGroups)
	groupGroup.Post("/", handlers.CreateGroup)
	groupGroup.Delete("/:id", handlers.DeleteGroup)
	groupGroup.Post("/:id/add-member", handlers.AddMember)
	groupGroup.Post("/:id/add-guest", handlers.AddGuest)
	groupGroup.Delete("/:groupId/members/:userId", handlers.RemoveMember)
	groupGroup.Get("/:id/members", handlers.GetMembers)
	groupGroup.Get("/:groupId/search-members", handlers.SearchMembers)

	// Session routes. Reads and join are public: the join code itself is the
	// shareable credential.
	api.Post("/sessions", middleware.AuthMiddleware, handlers.CreateSession)
	api.Get("/sessions/my", middleware.AuthMiddleware, handlers.GetMySessions)
	api.Get("/sessions/by-group/:groupId", middleware.AuthMiddleware, handlers.GetSessionsByGroup)
	api.Get("/sessions/:code", handlers.GetSession)
	api.Post("/sessions/:code/join", handlers.JoinSession)
	api.Get("/sessions/:code/participants", handlers.GetParticipants)
	api.Put("/sessions/:code/close", middleware.AuthMiddleware, handlers.CloseSession)

	// Match routes
	matchGroup := api.Group("/matches")
	matchGroup.Use(middleware.AuthMiddleware)
	matchGroup.Get("/", handlers.GetMatches)
	matchGroup.Post("/", handlers.CreateMatch)
	matchGroup.Put("/:id", handlers.UpdateScore)

	// Live session feed
	app.Use("/ws", handlers.FeedUpgrade)
	app.Get("/ws/sessions/:code", handlers.SessionFeedSocket)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
