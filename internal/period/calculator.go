package period

import (
	"time"

	"finance-ledger/internal/models"
)

// Window - календарный период бюджета, обе границы включительно
type Window struct {
	Kind  models.PeriodKind
	Start time.Time
	End   time.Time
}

// Calculate возвращает период, в который попадает опорная дата ref.
// Неизвестный вид периода считается месячным.
func Calculate(kind models.PeriodKind, ref time.Time) Window {
	y, m, d := ref.Date()
	loc := ref.Location()

	switch kind {
	case models.PeriodWeekly:
		// Неделя начинается в воскресенье
		start := time.Date(y, m, d-int(ref.Weekday()), 0, 0, 0, 0, loc)
		return Window{Kind: kind, Start: start, End: start.AddDate(0, 0, 6)}
	case models.PeriodYearly:
		return Window{
			Kind:  kind,
			Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y, time.December, 31, 0, 0, 0, 0, loc),
		}
	default:
		// Нулевой день следующего месяца - последний день текущего
		return Window{
			Kind:  models.PeriodMonthly,
			Start: time.Date(y, m, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y, m+1, 0, 0, 0, 0, 0, loc),
		}
	}
}

// StartDate возвращает начало периода в формате YYYY-MM-DD
func (w Window) StartDate() string {
	return models.FormatDate(w.Start)
}

// EndDate возвращает конец периода в формате YYYY-MM-DD
func (w Window) EndDate() string {
	return models.FormatDate(w.End)
}

// Contains сравнивает календарные даты, время суток и часовой пояс t не учитываются
func (w Window) Contains(t time.Time) bool {
	date := models.FormatDate(t)
	return date >= w.StartDate() && date <= w.EndDate()
}

// Days возвращает число дней в периоде
func (w Window) Days() int {
	startUTC := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
	endUTC := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(endUTC.Sub(startUTC).Hours()/24) + 1
}
