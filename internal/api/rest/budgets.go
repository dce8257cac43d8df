package rest

import (
	"net/http"

	"finance-ledger/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateBudget создает бюджет категории
// @Summary Создать бюджет
// @Description У пользователя может быть только один бюджет на категорию. Потраченная сумма не хранится и считается при каждом чтении.
// @Tags budgets
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param budget body models.CreateBudgetRequest true "Данные бюджета"
// @Success 201 {object} models.Budget
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Бюджет для категории уже существует (BUDGET_EXISTS)"
// @Router /budgets [post]
func (h *Handlers) CreateBudget(c *gin.Context) {
	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.budgets.CreateBudget(c.Request.Context(), UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBudgets возвращает бюджеты пользователя с их состоянием в текущем периоде
// @Summary Список бюджетов
// @Tags budgets
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Success 200 {object} map[string]interface{} "Бюджеты с потраченной суммой, остатком и статусом"
// @Router /budgets [get]
func (h *Handlers) ListBudgets(c *gin.Context) {
	evaluations, err := h.budgets.EvaluateAll(c.Request.Context(), UserID(c), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": evaluations})
}

// GetBudget возвращает состояние бюджета в текущем периоде
// @Summary Получить бюджет
// @Tags budgets
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID бюджета"
// @Success 200 {object} models.BudgetEvaluation
// @Failure 404 {object} map[string]string "Not Found"
// @Router /budgets/{id} [get]
func (h *Handlers) GetBudget(c *gin.Context) {
	evaluation, err := h.budgets.Evaluate(c.Request.Context(), UserID(c), c.Param("id"), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// UpdateBudget меняет лимит или период бюджета
// @Summary Изменить бюджет
// @Description Категорию бюджета изменить нельзя.
// @Tags budgets
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID бюджета"
// @Param budget body models.UpdateBudgetRequest true "Изменения"
// @Success 200 {object} models.Budget
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /budgets/{id} [put]
func (h *Handlers) UpdateBudget(c *gin.Context) {
	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.budgets.UpdateBudget(c.Request.Context(), UserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBudget удаляет бюджет
// @Summary Удалить бюджет
// @Tags budgets
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID бюджета"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /budgets/{id} [delete]
func (h *Handlers) DeleteBudget(c *gin.Context) {
	if err := h.budgets.DeleteBudget(c.Request.Context(), UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}
