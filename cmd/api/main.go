package main

import (
	"fmt"
	"net/http"
	"os"

	"cashplan/internal/config"
	"cashplan/internal/database"
	"cashplan/internal/handlers"
	"cashplan/internal/logger"
	"cashplan/internal/middleware"
	"cashplan/internal/services"
	"cashplan/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "cashplan/internal/docs" // Import swagger docs
)

// @title           Cashplan API
// @version         1.0
// @description     Cashplan projects recurring and one-time cash flows into a day-by-day balance timeline, tracks debts, and powers a personal liquidity dashboard.

// @host      localhost:8080
// @BasePath  /api/v1

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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	transactionService := services.NewTransactionService(db)
	settingsService := services.NewSettingsService(db)
	debtService := services.NewDebtService(db)
	dashboardService := services.NewDashboardService(transactionService, settingsService, debtService)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	debtHandler := handlers.NewDebtHandler(debtService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, appConfig.DefaultWindowDays)

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Dashboard routes
	dashboard := v1.Group("/dashboard")
	dashboard.GET("/timeline", dashboardHandler.GetTimeline)
	dashboard.GET("/stats", dashboardHandler.GetStats)
	dashboard.GET("/transactions", dashboardHandler.GetUpcomingTransactions)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/:id/splits", transactionHandler.AddSplit)
	transactions.PUT("/splits/:id", transactionHandler.UpdateSplit)

	// Debt routes
	debts := v1.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.ListDebts)
	debts.GET("/:id", debtHandler.GetDebtByID)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)
	debts.POST("/:id/payments", debtHandler.RecordPayment)

	// Settings routes
	settings := v1.Group("/settings")
	settings.GET("/initial-balance", settingsHandler.GetInitialBalance)
	settings.PUT("/initial-balance", settingsHandler.SetInitialBalance)

	log.Infof("Starting Cashplan backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
