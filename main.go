package main

import (
	"log"
	"os"
	"time"

	"actionboard/database"
	"actionboard/handlers"
	"actionboard/handlers/admin"
	"actionboard/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Seed the default season and mission catalog
	database.SeedReferenceData()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    8 * 1024 * 1024, // board imports are the largest payload
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/line", handlers.LineLoginStart)
	authGroup.Get("/line/callback", handlers.LineLoginCallback)

	// Public routes
	api.Get("/stats", handlers.GetCampaignStats)
	api.Get("/seasons", handlers.GetSeasons)
	api.Get("/seasons/current", handlers.GetCurrentSeason)

	// Ranking routes
	rankingGroup := api.Group("/rankings")
	rankingGroup.Get("/", handlers.GetOverallRanking)
	rankingGroup.Get("/daily", handlers.GetDailyRanking)
	rankingGroup.Get("/prefecture/:prefecture", handlers.GetPrefectureRanking)
	rankingGroup.Get("/mission/:id", handlers.GetMissionRanking)

	// Mission routes (require authentication)
	missionGroup := api.Group("/missions")
	missionGroup.Use(middleware.AuthMiddleware)
	missionGroup.Get("/", handlers.GetMissions)
	missionGroup.Get("/:id", handlers.GetMission)
	missionGroup.Post("/:id/achievements", handlers.AchieveMission)

	// Achievement routes
	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Get("/", handlers.GetMyAchievements)
	achievementGroup.Delete("/:id", handlers.CancelAchievement)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetMe)
	userGroup.Put("/me", handlers.UpdateMe)
	userGroup.Delete("/me", handlers.DeleteMe)
	userGroup.Get("/:id", handlers.GetPublicProfile)

	// Badge routes
	badgeGroup := api.Group("/badges")
	badgeGroup.Use(middleware.AuthMiddleware)
	badgeGroup.Get("/", handlers.GetMyBadges)
	badgeGroup.Get("/unnotified", handlers.GetUnnotifiedBadges)
	badgeGroup.Post("/:id/notified", handlers.MarkBadgeNotified)

	// Poster board routes
	boardGroup := api.Group("/boards")
	boardGroup.Get("/", handlers.GetPosterBoards)
	boardGroup.Get("/stats", handlers.GetPosterBoardStats)
	boardGroup.Get("/:id", handlers.GetPosterBoard)
	boardGroup.Get("/:id/history", handlers.GetPosterBoardHistory)
	boardGroup.Patch("/:id/status", middleware.AuthMiddleware, handlers.UpdatePosterBoardStatus)

	// Live board status feed
	app.Use("/ws/boards", handlers.BoardFeedUpgrade)
	app.Get("/ws/boards", websocket.New(handlers.BoardFeedSocket))

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware, middleware.AdminAuthMiddleware)
	adminGroup.Get("/users", admin.ListUsers)
	adminGroup.Put("/users/:id/admin", admin.SetUserAdmin)
	adminGroup.Delete("/users/:id", admin.DeleteUser)
	adminGroup.Post("/seasons", admin.CreateSeason)
	adminGroup.Post("/seasons/:id/activate", admin.ActivateSeason)
	adminGroup.Post("/missions", admin.CreateMission)
	adminGroup.Put("/missions/:id", admin.UpdateMission)
	adminGroup.Delete("/missions/:id", admin.HideMission)
	adminGroup.Post("/boards/import", admin.ImportBoards)
	adminGroup.Post("/badges/recalculate", admin.RecalculateBadges)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
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

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
