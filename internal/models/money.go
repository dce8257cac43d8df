package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout - формат календарной даты (YYYY-MM-DD), в котором хранятся и сравниваются даты операций
const DateLayout = "2006-01-02"

// ToCents переводит денежную сумму в минимальные единицы (копейки/центы) для хранения в БД
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// IsWholeCents сообщает, выражается ли сумма целым числом копеек без округления
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// FromCents восстанавливает денежную сумму из минимальных единиц
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatDate возвращает календарную дату в формате YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}
