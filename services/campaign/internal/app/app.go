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
	"tosika/pkg/s3"
	campaignHTTP "tosika/services/campaign/internal/controller/http"
	"tosika/services/campaign/internal/repo/persistent"
	"tosika/services/campaign/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "tosika/services/campaign/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, s3Client *s3.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	verifier := captcha.NewClient(cfg, captcha.NewRedisStore(redisClient))

	// Initialize repositories
	campaignRepo := persistent.NewCampaignRepository(db)
	bankInfoRepo := persistent.NewBankInfoRepository(db)

	// Initialize use cases
	campaignUseCase := usecase.NewCampaignUseCase(campaignRepo, bankInfoRepo, verifier, s3Client, log)

	// Initialize HTTP handlers
	campaignHandler := campaignHTTP.NewCampaignHandler(campaignUseCase, log)

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

	// Public browse endpoints, no token attached
	{
		api.GET("/campaigns", campaignHandler.ListCampaigns)
		api.GET("/campaigns/:id", campaignHandler.GetCampaign)
		api.GET("/categories", campaignHandler.ListCategories)
	}

	owner := api.Group("")
	owner.Use(middleware.AuthMiddleware(jwtService))
	owner.Use(middleware.RequireRole("owner", "admin"))
	owner.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	{
		owner.POST("/campaigns", campaignHandler.CreateCampaign)
		owner.GET("/me/campaigns", campaignHandler.ListOwnCampaigns)
		owner.PATCH("/campaigns/:id", campaignHandler.UpdateCampaign)
		owner.POST("/campaigns/:id/image", campaignHandler.UploadImage)
		owner.POST("/bank-infos", campaignHandler.CreateBankInfo)
		owner.GET("/bank-infos", campaignHandler.ListBankInfos)
		owner.DELETE("/bank-infos/:id", campaignHandler.DeleteBankInfo)
	}

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(jwtService))
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/admin/campaigns", campaignHandler.ListAllCampaigns)
		admin.PATCH("/campaigns/:id/admin-status", campaignHandler.SetAdminStatus)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Campaign service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down campaign service...")

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

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Campaign service exited")
}
