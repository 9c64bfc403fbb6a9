package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"placedin/config"
	"placedin/handler"
	"placedin/middleware"
	"placedin/model"
	"placedin/repository"
	"placedin/services"
	"placedin/usecase"
	"placedin/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"SESSION_DURATION",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

func setupRouter(sessionCfg config.SessionConfig) *gin.Engine {
	router := gin.New()

	// Repositories
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)
	activityRepo := repository.GetAdminActivityRepo(utils.MongoClient)
	analyticsRepo := repository.GetAnalyticsRepo(utils.MongoClient)
	ratingRepo := repository.GetRatingRepo(utils.MongoClient)
	experienceRepo := repository.GetExperienceRepo(utils.MongoClient)

	// Services
	userService := &usecase.UserService{
		UsersRepo:     userRepo,
		SessionRepo:   sessionRepo,
		AnalyticsRepo: analyticsRepo,
	}
	ratingService := &usecase.RatingService{
		RatingRepo:    ratingRepo,
		AnalyticsRepo: analyticsRepo,
	}
	experienceService := &usecase.ExperienceService{
		ExperienceRepo: experienceRepo,
		ActivityRepo:   activityRepo,
		AnalyticsRepo:  analyticsRepo,
	}
	adminService := &usecase.AdminService{
		UsersRepo:    userRepo,
		SessionRepo:  sessionRepo,
		ActivityRepo: activityRepo,
	}

	loginDeps := &handler.LoginHandlerDeps{
		UserService:   userService,
		SessionRepo:   sessionRepo,
		ActivityRepo:  activityRepo,
		AnalyticsRepo: analyticsRepo,
		SessionTTL:    sessionCfg.Duration,
		MaxSessions:   sessionCfg.MaxActivePerUser,
	}

	adminLookup := func(userID string) (string, bool, error) {
		user, err := userRepo.FindUser(userID)
		if err != nil {
			return "", false, err
		}
		if user == nil {
			return "", false, fmt.Errorf("user not found")
		}
		return user.Role, user.IsActive, nil
	}

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.SessionMiddleware(sessionRepo, sessionCfg.InactivityCutoff))

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, loginDeps)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}

		ratings := public.Group("/ratings")
		{
			ratings.POST("/submit", func(c *gin.Context) {
				handler.SubmitRatingHandler(c, ratingService)
			})
			ratings.GET("/all", func(c *gin.Context) {
				handler.GetAllRatingsHandler(c, ratingService)
			})
			ratings.GET("/stats", func(c *gin.Context) {
				handler.GetRatingStatsHandler(c, ratingService)
			})
		}

		experiences := public.Group("/experiences")
		{
			experiences.GET("/", func(c *gin.Context) {
				handler.BrowseExperiencesHandler(c, experienceService)
			})
			experiences.GET("/:id", func(c *gin.Context) {
				handler.GetExperienceHandler(c, experienceService)
			})
		}

		public.POST("/analytics/page-view", func(c *gin.Context) {
			handler.TrackPageViewHandler(c, analyticsRepo)
		})
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		auth := protected.Group("/auth")
		{
			auth.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			auth.POST("/change-password", func(c *gin.Context) {
				handler.ChangePasswordHandler(c, userService)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		protected.POST("/experiences", func(c *gin.Context) {
			handler.SubmitExperienceHandler(c, experienceService)
		})

		twofa := protected.Group("/2fa")
		{
			twofa.POST("/generate", func(c *gin.Context) {
				handler.Generate2FASecretHandler(c, userRepo)
			})
			twofa.POST("/enable", func(c *gin.Context) {
				handler.Enable2FAHandler(c, userRepo)
			})
			twofa.POST("/disable", func(c *gin.Context) {
				handler.Disable2FAHandler(c, userRepo)
			})
			twofa.POST("/recovery", func(c *gin.Context) {
				handler.UseRecoveryCodeHandler(c, userRepo)
			})
		}
	}

	// Admin routes (authentication + admin role required)
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware(adminLookup))
	{
		moderation := admin.Group("/experiences")
		{
			moderation.GET("/pending", func(c *gin.Context) {
				handler.PendingExperiencesHandler(c, experienceService)
			})
			moderation.POST("/:id/approve", func(c *gin.Context) {
				handler.ModerateExperienceHandler(c, experienceService, model.ActionApproveExperience)
			})
			moderation.POST("/:id/reject", func(c *gin.Context) {
				handler.ModerateExperienceHandler(c, experienceService, model.ActionRejectExperience)
			})
			moderation.POST("/:id/flag", func(c *gin.Context) {
				handler.ModerateExperienceHandler(c, experienceService, model.ActionFlagExperience)
			})
			moderation.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteExperienceHandler(c, experienceService)
			})
		}

		users := admin.Group("/users")
		{
			users.POST("/:id/suspend", func(c *gin.Context) {
				handler.SetUserStatusHandler(c, adminService, false)
			})
			users.POST("/:id/activate", func(c *gin.Context) {
				handler.SetUserStatusHandler(c, adminService, true)
			})
			users.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteUserHandler(c, adminService)
			})
		}

		activity := admin.Group("/activity")
		{
			activity.GET("/", func(c *gin.Context) {
				handler.RecentActivityHandler(c, activityRepo)
			})
			activity.GET("/by-admin/:id", func(c *gin.Context) {
				handler.ActivityByAdminHandler(c, activityRepo)
			})
		}

		admin.GET("/analytics/daily", func(c *gin.Context) {
			handler.DailyAnalyticsHandler(c, analyticsRepo)
		})
	}

	return router
}

func main() {
	dbCfg := config.LoadDatabaseConfig()
	sessionCfg := config.LoadSessionConfig()

	utils.InitMongoClient(dbCfg.ClientOptions())

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbCfg.DatabaseName)); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}

	// Redis-backed session cache and token blacklist. Both degrade
	// gracefully when Redis is unreachable.
	if cache, err := services.NewSessionCache(sessionCfg.RedisURL); err != nil {
		log.Printf("Warning: session cache disabled: %v", err)
	} else {
		services.GlobalSessionCache = cache
	}
	if blacklist, err := services.NewTokenBlacklist(sessionCfg.RedisURL); err != nil {
		log.Printf("Warning: token blacklist disabled: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	sessionRepo.StartCleanupTask(ctx, sessionCfg.CleanupInterval)

	router := setupRouter(sessionCfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
