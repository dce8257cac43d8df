package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"finance-ledger/config"
	"finance-ledger/internal/ledger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/period"
	"finance-ledger/internal/services"
	"finance-ledger/internal/storage"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type LedgerGRPCServer struct {
	budgets services.BudgetService
	goals   services.GoalService
	now     func() time.Time
}

var _ LedgerServiceServer = (*LedgerGRPCServer)(nil)

func NewLedgerGRPCServer(budgets services.BudgetService, goals services.GoalService) *LedgerGRPCServer {
	return &LedgerGRPCServer{
		budgets: budgets,
		goals:   goals,
		now:     time.Now,
	}
}

// CalculatePeriod возвращает границы периода {kind, date} -> {kind, start, end, days}
func (s *LedgerGRPCServer) CalculatePeriod(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ref, err := s.refDate(req)
	if err != nil {
		return nil, err
	}

	w := period.Calculate(models.PeriodKind(stringField(req, "kind")), ref)

	return structpb.NewStruct(map[string]any{
		"kind":  string(w.Kind),
		"start": w.StartDate(),
		"end":   w.EndDate(),
		"days":  w.Days(),
	})
}

// EvaluateBudget вычисляет состояние бюджета {user_id, budget_id, date}
func (s *LedgerGRPCServer) EvaluateBudget(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID := stringField(req, "user_id")
	budgetID := stringField(req, "budget_id")
	if userID == "" || budgetID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id and budget_id are required")
	}

	ref, err := s.refDate(req)
	if err != nil {
		return nil, err
	}

	evaluation, err := s.budgets.Evaluate(ctx, userID, budgetID, ref)
	if err != nil {
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"budget_id":        evaluation.Budget.ID,
		"category":         evaluation.Budget.Category,
		"limit":            evaluation.Budget.Amount.String(),
		"period_start":     evaluation.PeriodStart,
		"period_end":       evaluation.PeriodEnd,
		"spent_amount":     evaluation.SpentAmount.String(),
		"remaining_amount": evaluation.RemainingAmount.String(),
		"percentage":       evaluation.Percentage.String(),
		"status":           string(evaluation.Status),
	})
}

// Contribute проводит взнос {user_id, goal_id, account_id, amount, date, notes, idempotency_key}.
// Сумма передается строкой, чтобы не терять точность.
func (s *LedgerGRPCServer) Contribute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID := stringField(req, "user_id")
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}

	amount, err := decimal.NewFromString(stringField(req, "amount"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "amount must be a decimal string")
	}

	receipt, err := s.goals.Contribute(ctx, userID, stringField(req, "goal_id"), &models.ContributeRequest{
		AccountID: stringField(req, "account_id"),
		Amount:    amount,
		Date:      stringField(req, "date"),
		Notes:     stringField(req, "notes"),
	}, stringField(req, "idempotency_key"))
	if err != nil {
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"transaction_id":      receipt.TransactionID,
		"goal_id":             receipt.GoalID,
		"account_id":          receipt.AccountID,
		"amount":              receipt.Amount.String(),
		"date":                receipt.Date,
		"account_balance":     receipt.AccountBalance.String(),
		"goal_current_amount": receipt.GoalCurrentAmount.String(),
	})
}

func (s *LedgerGRPCServer) refDate(req *structpb.Struct) (time.Time, error) {
	value := stringField(req, "date")
	if value == "" {
		return s.now(), nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
	}
	return d, nil
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

// toStatus переводит ошибку сервиса в gRPC статус
func toStatus(err error) error {
	var contribErr *ledger.ContributionError

	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, ledger.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateRequest):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.As(err, &contribErr):
		if contribErr.Rejected {
			return status.Error(codes.FailedPrecondition, contribErr.Error())
		}
		// Исход неизвестен: клиент должен перечитать состояние перед повтором
		return status.Error(codes.Unavailable, contribErr.Error())
	default:
		log.Printf("gRPC request failed: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// NewServer создает gRPC сервер с зарегистрированным сервисом журнала
func NewServer(server *LedgerGRPCServer) *grpc.Server {
	s := grpc.NewServer()
	RegisterLedgerServiceServer(s, server)

	// Включаем reflection API для grpcurl и других инструментов
	reflection.Register(s)
	return s
}

// StartGRPCServer обслуживает запросы до отмены ctx, затем останавливает сервер
func StartGRPCServer(ctx context.Context, cfg *config.Config, server *LedgerGRPCServer) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	s := NewServer(server)

	go func() {
		<-ctx.Done()
		log.Println("Stopping gRPC server...")
		s.GracefulStop()
	}()

	log.Printf("gRPC server listening on port %d", cfg.Server.GRPCPort)
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %v", err)
	}

	return nil
}
