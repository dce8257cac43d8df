package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

var (
	ErrValidation         = errors.New("invalid contribution")
	ErrContributionFailed = errors.New("goal contribution failed")
)

// ValidationError описывает ошибку проверки запроса до обращения к хранилищу
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid contribution: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ContributionError - непрозрачная ошибка процедуры взноса.
// Неизвестно, какой шаг не удался; хранилище гарантирует, что изменений нет.
type ContributionError struct {
	Message string
	// Rejected - процедура ответила отказом; в отличие от таймаута или обрыва исход известен
	Rejected bool
	Err      error
}

func (e *ContributionError) Error() string {
	return "goal contribution failed: " + e.Message
}

func (e *ContributionError) Unwrap() error {
	return e.Err
}

func (e *ContributionError) Is(target error) bool {
	return target == ErrContributionFailed
}

// Ledger проводит взносы в цели через атомарную процедуру хранилища
type Ledger struct {
	procedure storage.ContributionProcedure
	timeout   time.Duration
}

func NewLedger(procedure storage.ContributionProcedure, timeout time.Duration) *Ledger {
	return &Ledger{
		procedure: procedure,
		timeout:   timeout,
	}
}

// Validate проверяет запрос на взнос
func Validate(req models.ContributionRequest) error {
	switch {
	case strings.TrimSpace(req.UserID) == "":
		return &ValidationError{Field: "user", Message: "is required"}
	case strings.TrimSpace(req.GoalID) == "":
		return &ValidationError{Field: "goal", Message: "must be selected"}
	case strings.TrimSpace(req.AccountID) == "":
		return &ValidationError{Field: "account", Message: "must be selected"}
	case !req.Amount.IsPositive():
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	case !models.IsWholeCents(req.Amount):
		return &ValidationError{Field: "amount", Message: "must have at most 2 decimal places"}
	case req.Date.IsZero():
		return &ValidationError{Field: "date", Message: "is required"}
	}
	return nil
}

// Contribute выполняет ровно один вызов процедуры взноса.
// Повторов нет: при таймауте результат неизвестен, и вызывающий должен перечитать состояние.
func (l *Ledger) Contribute(ctx context.Context, req models.ContributionRequest) (*models.ContributionReceipt, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	result, err := l.procedure.SubmitContribution(ctx, req)
	if err != nil {
		return nil, &ContributionError{Message: "contribution could not be confirmed", Err: err}
	}
	if result == nil {
		return nil, &ContributionError{Message: "no response from contribution procedure"}
	}
	if !result.OK {
		msg := result.ErrorMessage
		if msg == "" {
			msg = "contribution was rejected"
		}
		return nil, &ContributionError{Message: msg, Rejected: true}
	}

	return &models.ContributionReceipt{
		TransactionID:     result.TransactionID,
		GoalID:            req.GoalID,
		AccountID:         req.AccountID,
		Amount:            req.Amount,
		Date:              models.FormatDate(req.Date),
		AccountBalance:    result.AccountBalance,
		GoalCurrentAmount: result.GoalCurrentAmount,
	}, nil
}
