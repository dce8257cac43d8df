package rest

import (
	"net/http"
	"strings"

	"finance-ledger/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateGoal создает накопительную цель
// @Summary Создать цель
// @Tags goals
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param goal body models.CreateGoalRequest true "Данные цели"
// @Success 201 {object} models.Goal
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /goals [post]
func (h *Handlers) CreateGoal(c *gin.Context) {
	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goals.CreateGoal(c.Request.Context(), UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// ListGoals возвращает цели пользователя
// @Summary Список целей
// @Tags goals
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Success 200 {object} map[string]interface{} "Цели"
// @Router /goals [get]
func (h *Handlers) ListGoals(c *gin.Context) {
	goals, err := h.goals.ListGoals(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoal возвращает цель
// @Summary Получить цель
// @Tags goals
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID цели"
// @Success 200 {object} models.Goal
// @Failure 404 {object} map[string]string "Not Found"
// @Router /goals/{id} [get]
func (h *Handlers) GetGoal(c *gin.Context) {
	goal, err := h.goals.GetGoal(c.Request.Context(), UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// UpdateGoal редактирует цель
// @Summary Изменить цель
// @Description Достижение целевой суммы не завершает цель автоматически; статус меняется только явно.
// @Tags goals
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID цели"
// @Param goal body models.UpdateGoalRequest true "Изменения"
// @Success 200 {object} models.Goal
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /goals/{id} [put]
func (h *Handlers) UpdateGoal(c *gin.Context) {
	var req models.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goals.UpdateGoal(c.Request.Context(), UserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// DeleteGoal удаляет цель
// @Summary Удалить цель
// @Description Транзакции взносов остаются в истории без ссылки на цель.
// @Tags goals
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID цели"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /goals/{id} [delete]
func (h *Handlers) DeleteGoal(c *gin.Context) {
	if err := h.goals.DeleteGoal(c.Request.Context(), UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}

// Contribute переводит сумму со счета в цель
// @Summary Взнос в цель
// @Description Списание со счета, пополнение цели и запись транзакции выполняются атомарно. При таймауте результат неизвестен: перечитайте счет и цель перед повтором. Заголовок Idempotency-Key защищает от двойного списания.
// @Tags goals
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param Idempotency-Key header string false "Ключ идемпотентности"
// @Param id path string true "ID цели"
// @Param contribution body models.ContributeRequest true "Счет, сумма, дата и заметка"
// @Success 201 {object} models.ContributionReceipt
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Повтор запроса"
// @Failure 422 {object} map[string]string "Взнос отклонен"
// @Router /goals/{id}/contributions [post]
func (h *Handlers) Contribute(c *gin.Context) {
	var req models.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))

	receipt, err := h.goals.Contribute(c.Request.Context(), UserID(c), c.Param("id"), &req, key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
