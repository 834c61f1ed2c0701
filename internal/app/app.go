// Package app wires services, handlers and middleware into the HTTP router.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"apexfinance/internal/config"
	_ "apexfinance/internal/docs" // Register swagger docs
	"apexfinance/internal/handlers"
	"apexfinance/internal/middleware"
	"apexfinance/internal/services"
)

// Services holds the business logic layer shared by the router, the
// scheduler and the CLI.
type Services struct {
	Workspaces   services.WorkspaceServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Goals        services.GoalServicer
	Dashboard    services.DashboardServicer
	Snapshots    services.ScoreSnapshotServicer
	Audit        services.AuditServicer
}

// NewServices builds every service on top of db.
func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	categoryService := services.NewCategoryService(db)
	return &Services{
		Workspaces:   services.NewWorkspaceService(db),
		Categories:   categoryService,
		Transactions: services.NewTransactionService(db, categoryService),
		Goals:        services.NewGoalService(db),
		Dashboard:    services.NewDashboardService(db, cfg.CashFlowDays),
		Snapshots:    services.NewScoreSnapshotService(db),
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter builds the Gin engine serving the API.
func NewRouter(svcs *Services, cfg *config.Config) *gin.Engine {
	workspaceHandler := handlers.NewWorkspaceHandler(svcs.Workspaces, svcs.Audit)
	categoryHandler := handlers.NewCategoryHandler(svcs.Categories, svcs.Audit)
	transactionHandler := handlers.NewTransactionHandler(svcs.Transactions, svcs.Audit)
	goalHandler := handlers.NewGoalHandler(svcs.Goals, svcs.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svcs.Dashboard)
	snapshotHandler := handlers.NewScoreSnapshotHandler(svcs.Snapshots)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.POST("/workspaces", workspaceHandler.CreateWorkspace)
	v1.GET("/workspaces", workspaceHandler.GetWorkspaces)

	workspace := v1.Group("/workspaces/:id")
	workspace.Use(middleware.WorkspaceScope("id"))
	workspace.GET("", workspaceHandler.GetWorkspace)

	workspace.GET("/score", dashboardHandler.GetScore)
	workspace.GET("/summary", dashboardHandler.GetSummary)
	workspace.GET("/snapshots", snapshotHandler.GetSnapshots)

	categories := workspace.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/tree", categoryHandler.GetCategoryTree)
	categories.GET("/:categoryId", categoryHandler.GetCategoryByID)
	categories.PUT("/:categoryId", categoryHandler.UpdateCategory)

	transactions := workspace.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:transactionId", transactionHandler.GetTransactionByID)

	goals := workspace.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:goalId", goalHandler.GetGoal)
	goals.PATCH("/:goalId/progress", goalHandler.UpdateGoalProgress)

	reports := workspace.Group("/reports")
	reports.GET("/cashflow", dashboardHandler.GetCashFlow)
	reports.GET("/monthly", dashboardHandler.GetMonthlyReport)
	reports.GET("/distribution", dashboardHandler.GetExpenseDistribution)

	// Pipeline routes (API key auth, no workspace scope)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/snapshots", snapshotHandler.RecordSnapshots)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
