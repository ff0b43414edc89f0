// Package router assembles the HTTP API: middleware stack, services,
// handlers and the feature-gated route table.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/config"
	_ "github.com/cyril-numerily/dashboard-numerily-sub000/internal/docs"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/handlers"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/middleware"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/services"
)

// New builds the gin engine serving the API on db with the given config.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	features := cfg.Features
	if features == nil {
		features = engine.DefaultVisibility()
	}

	auditService := services.NewAuditService(db)
	budgetHandler := handlers.NewBudgetHandler(services.NewBudgetService(db), auditService)
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(db), auditService)
	expenseHandler := handlers.NewExpenseHandler(services.NewExpenseService(db), auditService)
	paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService(db), auditService)
	goalHandler := handlers.NewGoalHandler(services.NewGoalService(db), auditService)
	savingsHandler := handlers.NewSavingsHandler(services.NewSavingsService(db), auditService)
	reportHandler := handlers.NewReportHandler(services.NewReportService(db))
	featureHandler := handlers.NewFeatureHandler(features)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.ErrorHandler())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthCheck(db))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.AdminRole))

	v1.GET("/features", featureHandler.GetFeatures)

	gate := func(f engine.Feature) gin.HandlerFunc {
		return middleware.RequireFeature(features, f)
	}

	budgets := v1.Group("/budgets", gate(engine.FeatureBudgets))
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.POST("/:id/funds", budgetHandler.AddFunds)
	budgets.POST("/:id/default", budgetHandler.SetDefaultBudget)
	budgets.GET("/:id/summary", budgetHandler.GetBudgetSummary)

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	budgetExpenses := v1.Group("/budgets/:id/expenses", gate(engine.FeatureExpenses))
	budgetExpenses.GET("", expenseHandler.GetExpenses)
	budgetExpenses.POST("", expenseHandler.CreateExpense)

	expenses := v1.Group("/expenses", gate(engine.FeatureExpenses))
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.PATCH("/:id/status", expenseHandler.UpdateExpenseStatus)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	payments := v1.Group("", gate(engine.FeaturePayments))
	payments.GET("/expenses/:id/payments", paymentHandler.GetPayments)
	payments.POST("/expenses/:id/payments", paymentHandler.CreatePayment)
	payments.DELETE("/payments/:id", paymentHandler.DeletePayment)

	plans := v1.Group("/budgets/:id/allocation-plan", gate(engine.FeatureAllocationPlans))
	plans.GET("", goalHandler.GetAllocationPlan)
	plans.PUT("", goalHandler.SaveAllocationPlan)

	savings := v1.Group("", gate(engine.FeatureSavings))
	savings.GET("/savings", savingsHandler.GetGlobalSavings)
	savings.POST("/budgets/:id/savings-transfers", savingsHandler.TransferToSavings)

	v1.GET("/budgets/:id/report", gate(engine.FeatureReports), reportHandler.GetReport)
	v1.GET("/budgets/:id/report.xlsx", gate(engine.FeatureExports), reportHandler.ExportXLSX)
	v1.GET("/budgets/:id/chart.png", gate(engine.FeatureCharts), reportHandler.GetChart)

	return router
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
