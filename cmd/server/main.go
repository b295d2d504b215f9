package main

import (
	"log"
	"strconv"
	"time"

	"civichub/config"
	"civichub/db"
	"civichub/internal/cache"
	"civichub/middlewares"
	"civichub/routes"
	"civichub/services"
	"civichub/utils"
	"civichub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.prod.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTConfig(cfg.JWT.Secret, cfg.JWT.Expiry)
	utils.SetSMTPConfig(cfg)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis is optional; caching and rate limiting degrade gracefully
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	}

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	services.InitGamificationService(websocket.NewNotifier())

	// Seed the badge catalog and starter learning modules
	utils.SeedBadgeCatalog()
	utils.SeedLearningModules()

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignupRouteHandler)
	router.POST("/verifyEmail", routes.VerifyEmailRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)

	// Public directory reads
	router.GET("/officials", routes.ListOfficialsRouteHandler)
	router.GET("/officials/:id", routes.GetOfficialRouteHandler)
	router.GET("/officials/:id/ratings", routes.ListOfficialRatingsRouteHandler)
	router.GET("/officials/:id/promises", routes.ListOfficialPromisesRouteHandler)
	router.GET("/promises/:id/evidence", routes.ListPromiseEvidenceRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/fetchprofile", routes.GetProfileRouteHandler)
		auth.PUT("/user/updateprofile", routes.UpdateProfileRouteHandler)

		auth.POST("/ratings", middlewares.RateLimit("rating", 5, time.Hour), routes.CreateRatingRouteHandler)
		auth.PUT("/ratings/:id", routes.UpdateRatingRouteHandler)
		auth.DELETE("/ratings/:id", routes.DeleteRatingRouteHandler)
		auth.POST("/ratings/:id/upvote", routes.UpvoteRatingRouteHandler)

		auth.POST("/promises", routes.CreatePromiseRouteHandler)
		auth.POST("/promises/:id/evidence", middlewares.RateLimit("evidence", 10, time.Hour), routes.SubmitEvidenceRouteHandler)

		auth.POST("/campaigns", middlewares.RateLimit("campaign", 3, 24*time.Hour), routes.CreateCampaignRouteHandler)
		auth.GET("/campaigns", routes.ListCampaignsRouteHandler)
		auth.POST("/campaigns/:id/support", routes.SupportCampaignRouteHandler)

		auth.GET("/learning/modules", routes.ListModulesRouteHandler)
		auth.POST("/learning/modules/:id/complete", routes.CompleteModuleRouteHandler)
		auth.POST("/learning/modules/:id/quiz", routes.SubmitQuizAttemptRouteHandler)

		auth.POST("/posts", middlewares.RateLimit("post", 10, time.Hour), routes.CreatePostRouteHandler)
		auth.GET("/posts", routes.ListPostsRouteHandler)
		auth.POST("/posts/:id/comments", routes.CreateCommentRouteHandler)
		auth.GET("/posts/:id/comments", routes.ListCommentsRouteHandler)

		auth.GET("/gamification/state", routes.GetMyGameStateRouteHandler)
		auth.GET("/gamification/streaks/risk", routes.GetStreakRisksRouteHandler)
		auth.GET("/gamification/badges", routes.ListBadgesRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		// WebSocket endpoint for live gamification events
		auth.GET("/ws", websocket.Handler)

		// Moderation and administration, RBAC gated
		auth.GET("/moderation/ratings", middlewares.RequirePermission("ratings", "moderate"), routes.ListPendingRatingsRouteHandler)
		auth.PUT("/moderation/ratings/:id", middlewares.RequirePermission("ratings", "moderate"), routes.ModerateRatingRouteHandler)
		auth.POST("/admin/officials", middlewares.RequirePermission("officials", "manage"), routes.CreateOfficialRouteHandler)
		auth.PUT("/admin/officials/:id", middlewares.RequirePermission("officials", "manage"), routes.UpdateOfficialRouteHandler)
		auth.POST("/admin/badges", middlewares.RequirePermission("badges", "manage"), routes.CreateBadgeRouteHandler)
		auth.POST("/admin/modules", middlewares.RequirePermission("modules", "manage"), routes.CreateModuleRouteHandler)
	}

	return router
}
