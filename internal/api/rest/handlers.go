package rest

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"finance-ledger/internal/generator"
	"finance-ledger/internal/ledger"
	"finance-ledger/internal/services"
	"finance-ledger/internal/storage"

	"github.com/gin-gonic/gin"
)

// UserIDHeader - заголовок с идентификатором пользователя, от имени которого выполняется запрос
const UserIDHeader = "X-User-ID"

// IdempotencyKeyHeader - необязательный заголовок для защиты взноса от повторного применения
const IdempotencyKeyHeader = "Idempotency-Key"

const userIDKey = "user_id"

type Handlers struct {
	accounts     services.AccountService
	transactions services.TransactionService
	budgets      services.BudgetService
	goals        services.GoalService
	generator    *generator.TransactionGenerator
	now          func() time.Time
}

// Создает новые обработчики REST API
func NewHandlers(
	accounts services.AccountService,
	transactions services.TransactionService,
	budgets services.BudgetService,
	goals services.GoalService,
) *Handlers {
	return &Handlers{
		accounts:     accounts,
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
		generator:    generator.NewTransactionGenerator(),
		now:          time.Now,
	}
}

// RequireUser отклоняет запросы без заголовка X-User-ID
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UserIDHeader + " header is required"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID возвращает пользователя, установленного RequireUser
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// respondError переводит ошибку сервиса в HTTP-ответ
func respondError(c *gin.Context, err error) {
	var contribErr *ledger.ContributionError

	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, ledger.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, storage.ErrBudgetExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": storage.BudgetExistsCode})
	case errors.Is(err, services.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "Request with this idempotency key was already processed"})
	case errors.Is(err, storage.ErrAccountInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &contribErr):
		// Сообщение процедуры показывается как есть, без указания шага
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": contribErr.Error(), "rejected": contribErr.Rejected})
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
