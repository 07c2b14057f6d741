package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tosika/pkg/captcha"
	"tosika/pkg/config"
	"tosika/pkg/jwt"
	"tosika/pkg/logger"
	"tosika/pkg/middleware"
	"tosika/pkg/queue"
	moderationHTTP "tosika/services/moderation/internal/controller/http"
	"tosika/services/moderation/internal/repo/persistent"
	"tosika/services/moderation/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "tosika/services/moderation/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	verifier := captcha.NewClient(cfg, captcha.NewRedisStore(redisClient))

	// Initialize repositories
	donationRepo := persistent.NewDonationRepository(db)
	withdrawalRepo := persistent.NewWithdrawalRepository(db)
	campaignRepo := persistent.NewCampaignRepository(db)
	userRepo := persistent.NewUserRepository(db)
	flagStore := persistent.NewFlagStore(redisClient)

	// A nil *queue.Client must not end up inside the interface value
	var publisher usecase.EventPublisher
	if queueClient != nil {
		publisher = queueClient
	}

	// Initialize use cases
	moderationUseCase := usecase.NewModerationUseCase(
		donationRepo, withdrawalRepo, campaignRepo, userRepo,
		flagStore, verifier, publisher, log)

	// Initialize HTTP handlers
	moderationHandler := moderationHTTP.NewModerationHandler(moderationUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Public endpoints: anyone can donate or read a campaign's donation wall
	public := api.Group("")
	public.Use(middleware.RateLimitMiddleware(redisClient, 30, time.Minute))
	{
		public.POST("/donations", moderationHandler.CreateDonation)
		public.GET("/campaigns/:campaign_id/donations", moderationHandler.ListCampaignDonations)
		public.GET("/campaigns/:campaign_id/thank-you", moderationHandler.ThankYouPending)
	}

	owner := api.Group("")
	owner.Use(middleware.AuthMiddleware(jwtService))
	owner.Use(middleware.RequireRole("owner", "admin"))
	owner.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	{
		owner.POST("/withdrawals", moderationHandler.CreateWithdrawal)
		owner.GET("/me/withdrawals", moderationHandler.ListOwnWithdrawals)
		owner.DELETE("/withdrawals/:id", moderationHandler.DeleteWithdrawal)
	}

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(jwtService))
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/admin/donations", moderationHandler.ListDonations)
		admin.PATCH("/admin/donations/:id/status", moderationHandler.ValidateDonation)
		admin.POST("/admin/donations/bulk-status", moderationHandler.BulkValidateDonations)
		admin.GET("/admin/withdrawals", moderationHandler.ListWithdrawals)
		admin.PATCH("/admin/withdrawals/:id/status", moderationHandler.ValidateWithdrawal)
		admin.POST("/admin/withdrawals/bulk-status", moderationHandler.BulkValidateWithdrawals)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Moderation service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down moderation service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Close queue connection
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing queue: %v", err)
		}
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Moderation service exited")
}
