package notifier_service

import (
	"context"
	"log"
	"net/http"

	"finance-ledger/internal/api/rest"
	"finance-ledger/internal/logger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/redis"

	"github.com/gin-gonic/gin"
)

// SweepFunc запускает внеплановую проверку всех бюджетов
type SweepFunc func(ctx context.Context) error

// SetupRoutes настраивает маршруты для notifier service
func SetupRoutes(router *gin.Engine, redisClient redis.ClientInterface, sweep SweepFunc) {
	api := router.Group("/api/v1")
	{
		user := api.Group("/alerts", rest.RequireUser())
		user.GET("", func(c *gin.Context) {
			alerts, err := redisClient.GetBudgetAlerts(c.Request.Context(), rest.UserID(c))
			if err != nil {
				log.Printf("Error getting alerts: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alerts"})
				return
			}
			if alerts == nil {
				alerts = []models.BudgetAlert{}
			}
			c.JSON(http.StatusOK, gin.H{"alerts": alerts})
		})
		user.DELETE("", func(c *gin.Context) {
			if err := redisClient.DeleteBudgetAlerts(c.Request.Context(), rest.UserID(c)); err != nil {
				log.Printf("Error deleting alerts: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete alerts"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Alerts dismissed"})
		})

		api.GET("/budget-stats", func(c *gin.Context) {
			stats, err := redisClient.GetBudgetStatusStats(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get budget stats"})
				return
			}
			c.JSON(http.StatusOK, stats)
		})

		api.POST("/sweep", func(c *gin.Context) {
			if err := sweep(c.Request.Context()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Budget sweep completed"})
		})

		api.DELETE("/admin/alerts", func(c *gin.Context) {
			if err := redisClient.ClearAlertData(c.Request.Context()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear alerts"})
				return
			}

			logger.LogEvent(logger.EventDBUpdated, serviceName, "redis", map[string]interface{}{
				"action": "alerts_cleared",
			})

			c.JSON(http.StatusOK, gin.H{"message": "All alerts and stats cleared successfully"})
		})
	}

	// Используем общие endpoints (health, events, stats)
	rest.SetupCommonEndpoints(router)
}
