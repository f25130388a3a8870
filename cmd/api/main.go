package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"debtwise/internal/config"
	"debtwise/internal/database"
	"debtwise/internal/handlers"
	"debtwise/internal/logger"
	"debtwise/internal/middleware"
	"debtwise/internal/services"
	"debtwise/internal/validator"
)

// @title           Debtwise API
// @version         1.0
// @description     Debtwise helps users understand their debt load, assess repayment risk, and plan their way out of debt.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	debtService := services.NewDebtService(db)
	incomeService := services.NewIncomeService(db)
	planService := services.NewPlanService(db)
	auditService := services.NewAuditService(db)
	insightService := services.NewInsightService(
		appConfig.InsightEndpoint, appConfig.InsightModel, appConfig.InsightTimeout)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	debtHandler := handlers.NewDebtHandler(debtService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	planHandler := handlers.NewPlanHandler(planService, auditService)
	insightHandler := handlers.NewInsightHandler(insightService, planService, debtService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Debt routes
	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/:id", debtHandler.GetDebt)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)
	debts.POST("/:id/payments", debtHandler.RecordPayment)

	// Income routes
	protected.PUT("/income", incomeHandler.UpsertProfile)
	protected.GET("/income", incomeHandler.GetProfile)

	// Risk and planning routes
	protected.GET("/risk", planHandler.GetRisk)
	plans := protected.Group("/plans")
	plans.POST("/preview", planHandler.PreviewPlan)
	plans.POST("", planHandler.CommitPlan)
	plans.GET("", planHandler.GetPlanHistory)
	plans.GET("/active", planHandler.GetActivePlan)

	// Insight routes
	protected.GET("/insights", insightHandler.GetInsights)

	log.Infof("Starting Debtwise backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
