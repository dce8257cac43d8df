package rest

import (
	"net/http"
	"strconv"

	"finance-ledger/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CORSMiddleware возвращает middleware для обработки CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-User-ID, Idempotency-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupCommonEndpoints добавляет общие endpoints (health, events, stats) к роутеру
func SetupCommonEndpoints(router *gin.Engine) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Журнал событий, ?type= фильтрует по типу
	router.GET("/api/v1/events", func(c *gin.Context) {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
				limit = parsed
			}
		}

		if eventType := c.Query("type"); eventType != "" {
			c.JSON(http.StatusOK, gin.H{"events": logger.GetEventsByType(logger.EventType(eventType), limit)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": logger.GetEvents(limit)})
	})

	// Stats endpoint
	router.GET("/api/v1/stats", func(c *gin.Context) {
		stats := logger.GetStats()
		c.JSON(http.StatusOK, stats)
	})
}

// RegisterRoutes подключает маршруты ledger API к группе /api/v1
func RegisterRoutes(api *gin.RouterGroup, handlers *Handlers) {
	api.GET("/periods", handlers.GetPeriod)

	user := api.Group("", RequireUser())
	{
		user.POST("/accounts", handlers.CreateAccount)
		user.GET("/accounts", handlers.ListAccounts)
		user.GET("/accounts/:id", handlers.GetAccount)
		user.DELETE("/accounts/:id", handlers.DeactivateAccount)

		user.POST("/transactions", handlers.CreateTransaction)
		user.GET("/transactions", handlers.QueryTransactions)
		user.GET("/transactions/generate", handlers.GenerateRandomTransaction)
		user.GET("/transactions/:id", handlers.GetTransaction)
		user.PATCH("/transactions/:id", handlers.UpdateTransaction)

		user.POST("/budgets", handlers.CreateBudget)
		user.GET("/budgets", handlers.ListBudgets)
		user.GET("/budgets/:id", handlers.GetBudget)
		user.PUT("/budgets/:id", handlers.UpdateBudget)
		user.DELETE("/budgets/:id", handlers.DeleteBudget)

		user.POST("/goals", handlers.CreateGoal)
		user.GET("/goals", handlers.ListGoals)
		user.GET("/goals/:id", handlers.GetGoal)
		user.PUT("/goals/:id", handlers.UpdateGoal)
		user.DELETE("/goals/:id", handlers.DeleteGoal)
		user.POST("/goals/:id/contributions", handlers.Contribute)
	}
}

// SetupRouter настраивает маршруты REST API
func SetupRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()

	// CORS middleware
	router.Use(CORSMiddleware())

	router.Use(gin.Logger(), gin.Recovery())

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	RegisterRoutes(router.Group("/api/v1"), handlers)

	// Общие endpoints (health, events, stats)
	SetupCommonEndpoints(router)

	return router
}
