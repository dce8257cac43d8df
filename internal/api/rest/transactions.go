package rest

import (
	"net/http"
	"time"

	"finance-ledger/internal/logger"
	"finance-ledger/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateTransaction проводит транзакцию
// @Summary Провести транзакцию
// @Description Сохраняет транзакцию и проводит ее по балансам. Доход хранится положительным, расход и перевод отрицательными; перевод зачисляет модуль суммы на счет назначения.
// @Tags transactions
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param transaction body models.CreateTransactionRequest true "Данные транзакции"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Счет не найден"
// @Failure 422 {object} map[string]string "Счет закрыт"
// @Router /transactions [post]
func (h *Handlers) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.transactions.CreateTransaction(c.Request.Context(), UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// QueryTransactions возвращает транзакции пользователя по фильтру
// @Summary Список транзакций
// @Description Фильтры необязательны, границы дат включительно. Сортировка: новые сначала.
// @Tags transactions
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param account_id query string false "ID счета"
// @Param category query string false "Категория (точное совпадение)"
// @Param type query string false "income, expense или transfer"
// @Param date_from query string false "Начало периода, YYYY-MM-DD"
// @Param date_to query string false "Конец периода, YYYY-MM-DD"
// @Success 200 {object} map[string]interface{} "Транзакции"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /transactions [get]
func (h *Handlers) QueryTransactions(c *gin.Context) {
	filter := models.TransactionFilter{
		UserID:    UserID(c),
		AccountID: c.Query("account_id"),
		Category:  c.Query("category"),
		Type:      models.TransactionType(c.Query("type")),
	}

	var ok bool
	if filter.DateFrom, ok = dateQuery(c, "date_from"); !ok {
		return
	}
	if filter.DateTo, ok = dateQuery(c, "date_to"); !ok {
		return
	}

	transactions, err := h.transactions.QueryTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransaction возвращает транзакцию
// @Summary Получить транзакцию
// @Tags transactions
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID транзакции"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} map[string]string "Not Found"
// @Router /transactions/{id} [get]
func (h *Handlers) GetTransaction(c *gin.Context) {
	tx, err := h.transactions.GetTransaction(c.Request.Context(), UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// UpdateTransaction редактирует транзакцию
// @Summary Изменить транзакцию
// @Description Меняются только описание, категория, статус и дата. Сумма, тип и счета неизменяемы.
// @Tags transactions
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID транзакции"
// @Param patch body models.UpdateTransactionRequest true "Изменения"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /transactions/{id} [patch]
func (h *Handlers) UpdateTransaction(c *gin.Context) {
	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.transactions.UpdateTransaction(c.Request.Context(), UserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// GenerateRandomTransaction генерирует случайную транзакцию
// @Summary Сгенерировать случайную транзакцию
// @Description Возвращает правдоподобное предложение транзакции для счета пользователя. В базу не записывается.
// @Tags transactions
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param account_id query string true "ID счета"
// @Param type query string false "income или expense"
// @Success 200 {object} models.CreateTransactionRequest
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Счет не найден"
// @Router /transactions/generate [get]
func (h *Handlers) GenerateRandomTransaction(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	if _, err := h.accounts.GetAccount(c.Request.Context(), UserID(c), accountID); err != nil {
		respondError(c, err)
		return
	}

	proposal := h.generator.GenerateTransaction(accountID, models.TransactionType(c.Query("type")))

	logger.LogEvent(logger.EventGenerated, "ledger-service", "generator", map[string]any{
		"account_id": accountID,
		"type":       proposal.Type,
		"category":   proposal.Category,
	})

	c.JSON(http.StatusOK, proposal)
}

// dateQuery разбирает необязательный параметр даты; при ошибке ответ уже отправлен
func dateQuery(c *gin.Context, param string) (*time.Time, bool) {
	value := c.Query(param)
	if value == "" {
		return nil, true
	}
	d, err := models.ParseDate(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": param + " must be YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}
