package main

import (
	"fmt"
	"net/http"
	"os"

	"spendbook/internal/config"
	"spendbook/internal/database"
	_ "spendbook/internal/docs" // Import swagger docs
	"spendbook/internal/handlers"
	"spendbook/internal/logger"
	"spendbook/internal/middleware"
	"spendbook/internal/scheduler"
	"spendbook/internal/services"
	"spendbook/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Spendbook API
// @version         1.0
// @description     Spendbook is an expense tracking application for recording personal spending, managing budgets, splitting group expenses, and getting reminded about recurring bills.
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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	budgetService := services.NewBudgetService(db)
	groupService := services.NewGroupService(db)
	billService := services.NewRecurringBillService(db)
	notificationService := services.NewNotificationService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	groupHandler := handlers.NewGroupHandler(groupService)
	billHandler := handlers.NewRecurringBillHandler(billService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Start the daily bill-reminder sweep
	reminderCron, err := scheduler.Start(appConfig.ReminderCron, notificationService)
	if err != nil {
		return fmt.Errorf("failed to start reminder scheduler: %w", err)
	}
	defer reminderCron.Stop()

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

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User routes
	users := protected.Group("/users")
	users.GET("", userHandler.GetUsers)
	users.GET("/:id", userHandler.GetUser)
	users.GET("/username/:username", userHandler.GetUserByUsername)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/search", expenseHandler.SearchExpenses)
	expenses.GET("/filter/category", expenseHandler.FilterByCategory)
	expenses.GET("/filter/payment-method", expenseHandler.FilterByPaymentMethod)
	expenses.GET("/filter/date-range", expenseHandler.FilterByDateRange)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/user/:userId", budgetHandler.GetUserBudgets)
	budgets.GET("/active/user/:userId/category/:category", budgetHandler.GetActiveBudget)
	budgets.GET("/spending/user/:userId/category/:category", budgetHandler.GetTotalSpending)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.GET("/:id/spending", budgetHandler.GetBudgetSpending)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Group routes
	groups := protected.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("", groupHandler.GetGroups)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.POST("/:id/members", groupHandler.AddMembers)
	groups.POST("/:id/expenses", groupHandler.AddExpense)
	groups.GET("/:id/summary", groupHandler.GetSummary)
	groups.PUT("/:id", groupHandler.UpdateGroup)
	groups.DELETE("/:id", groupHandler.DeleteGroup)

	// Recurring bill routes
	bills := protected.Group("/recurring-bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.GetBills)
	bills.GET("/user/:userId", billHandler.GetUserBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("/:id", notificationHandler.GetUserNotifications)
	notifications.GET("/:id/unread", notificationHandler.GetUnreadNotifications)
	notifications.POST("/:id/mark-read", notificationHandler.MarkNotificationRead)
	notifications.POST("/:id/mark-all-read", notificationHandler.MarkAllNotificationsRead)

	log.Infof("Starting Spendbook backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
