package generator

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"finance-ledger/internal/models"
)

// spendingCategory описывает типичный диапазон суммы расхода в категории
type spendingCategory struct {
	name     string
	min, max float64
	weight   float32
}

var expenseCategories = []spendingCategory{
	{name: "Food", min: 5, max: 150, weight: 35},
	{name: "Transport", min: 2, max: 60, weight: 20},
	{name: "Shopping", min: 15, max: 400, weight: 15},
	{name: "Entertainment", min: 10, max: 120, weight: 12},
	{name: "Utilities", min: 40, max: 250, weight: 10},
	{name: "Health", min: 10, max: 200, weight: 8},
}

var incomeCategories = []spendingCategory{
	{name: "Salary", min: 1500, max: 5000, weight: 70},
	{name: "Freelance", min: 100, max: 1500, weight: 25},
	{name: "Gifts", min: 20, max: 300, weight: 5},
}

// incomeShare - доля доходов среди случайных транзакций
const incomeShare = 0.2

type TransactionGenerator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

func NewTransactionGenerator() *TransactionGenerator {
	// seed 0 - криптографически случайный источник
	return NewTransactionGeneratorWithSeed(0)
}

func NewTransactionGeneratorWithSeed(seed int64) *TransactionGenerator {
	return &TransactionGenerator{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// GenerateTransaction возвращает предложение транзакции для счета; в хранилище оно не записывается.
// kind: income, expense или пусто для случайного выбора.
func (g *TransactionGenerator) GenerateTransaction(accountID string, kind models.TransactionType) *models.CreateTransactionRequest {
	if kind != models.TransactionIncome && kind != models.TransactionExpense {
		kind = models.TransactionExpense
		if g.faker.Float64Range(0, 1) < incomeShare {
			kind = models.TransactionIncome
		}
	}

	req := &models.CreateTransactionRequest{
		AccountID: accountID,
		Type:      kind,
		Status:    models.StatusCompleted,
		Date:      models.FormatDate(g.randomRecentDate()),
	}

	if kind == models.TransactionIncome {
		category := g.pick(incomeCategories)
		req.Category = category.name
		req.Amount = g.amount(category)
		req.FromParty = g.faker.Company()
		req.Description = category.name + " from " + req.FromParty
		return req
	}

	category := g.pick(expenseCategories)
	req.Category = category.name
	req.Amount = g.amount(category)
	req.ToParty = g.faker.Company()
	req.Description = g.faker.Sentence(4)
	return req
}

func (g *TransactionGenerator) pick(categories []spendingCategory) spendingCategory {
	items := make([]any, len(categories))
	weights := make([]float32, len(categories))
	for i, c := range categories {
		items[i] = c
		weights[i] = c.weight
	}

	picked, err := g.faker.Weighted(items, weights)
	if err != nil {
		return categories[0]
	}
	return picked.(spendingCategory)
}

// amount возвращает сумму в диапазоне категории, округленную до копеек
func (g *TransactionGenerator) amount(c spendingCategory) decimal.Decimal {
	value := math.Round(g.faker.Float64Range(c.min, c.max)*100) / 100
	return decimal.NewFromFloat(value).Round(2)
}

// randomRecentDate возвращает дату в пределах последних 30 дней
func (g *TransactionGenerator) randomRecentDate() time.Time {
	now := g.now()
	return now.AddDate(0, 0, -g.faker.Number(0, 29))
}
