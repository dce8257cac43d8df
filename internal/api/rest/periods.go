package rest

import (
	"net/http"

	"finance-ledger/internal/models"
	"finance-ledger/internal/period"

	"github.com/gin-gonic/gin"
)

// GetPeriod возвращает границы периода, содержащего дату
// @Summary Вычислить период
// @Description Неделя начинается в воскресенье. Неизвестный вид периода считается месячным.
// @Tags periods
// @Produce json
// @Param kind query string false "weekly, monthly или yearly" default(monthly)
// @Param date query string false "Опорная дата, YYYY-MM-DD (по умолчанию сегодня)"
// @Success 200 {object} map[string]interface{} "Начало и конец периода"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /periods [get]
func (h *Handlers) GetPeriod(c *gin.Context) {
	ref := h.now()
	if value := c.Query("date"); value != "" {
		d, err := models.ParseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		ref = d
	}

	w := period.Calculate(models.PeriodKind(c.Query("kind")), ref)

	c.JSON(http.StatusOK, gin.H{
		"kind":  w.Kind,
		"start": w.StartDate(),
		"end":   w.EndDate(),
		"days":  w.Days(),
	})
}
