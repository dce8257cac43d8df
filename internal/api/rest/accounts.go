package rest

import (
	"net/http"

	"finance-ledger/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateAccount открывает счет
// @Summary Открыть счет
// @Description Создает счет пользователя. Начальный баланс проводится при создании, дальше баланс меняется только транзакциями.
// @Tags accounts
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param account body models.CreateAccountRequest true "Данные счета"
// @Success 201 {object} models.Account
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /accounts [post]
func (h *Handlers) CreateAccount(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.CreateAccount(c.Request.Context(), UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// ListAccounts возвращает счета пользователя
// @Summary Список счетов
// @Tags accounts
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Success 200 {object} map[string]interface{} "Счета"
// @Router /accounts [get]
func (h *Handlers) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.ListAccounts(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// GetAccount возвращает счет
// @Summary Получить счет
// @Tags accounts
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID счета"
// @Success 200 {object} models.Account
// @Failure 404 {object} map[string]string "Not Found"
// @Router /accounts/{id} [get]
func (h *Handlers) GetAccount(c *gin.Context) {
	account, err := h.accounts.GetAccount(c.Request.Context(), UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeactivateAccount закрывает счет
// @Summary Закрыть счет
// @Description Помечает счет неактивным. История транзакций сохраняется.
// @Tags accounts
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID счета"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /accounts/{id} [delete]
func (h *Handlers) DeactivateAccount(c *gin.Context) {
	if err := h.accounts.DeactivateAccount(c.Request.Context(), UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}
