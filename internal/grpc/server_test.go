package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"finance-ledger/internal/ledger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/services"
	"finance-ledger/internal/storage/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const bufSize = 1024 * 1024

func setupTestServer(t *testing.T) (*LedgerClient, *memory.Store) {
	t.Helper()

	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.CreateAccount(ctx, &models.Account{ID: "acc-1", UserID: "u1", Name: "Main", Balance: decimal.NewFromInt(350), IsActive: true}))
	require.NoError(t, store.CreateGoal(ctx, &models.Goal{ID: "goal-1", UserID: "u1", Name: "Vacation", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(400)}))
	require.NoError(t, store.CreateBudget(ctx, &models.Budget{ID: "b1", UserID: "u1", Category: "Food", Amount: decimal.NewFromInt(100), Period: models.PeriodWeekly}))
	require.NoError(t, store.PostTransaction(ctx, &models.Transaction{
		ID: "t1", UserID: "u1", AccountID: "acc-1", Amount: decimal.NewFromInt(-100),
		Type: models.TransactionExpense, Category: "Food", Status: models.StatusCompleted,
		Date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
	}))

	budgets := services.NewBudgetService(store, store)
	goals := services.NewGoalService(store, ledger.NewLedger(store, time.Second), nil)

	lis := bufconn.Listen(bufSize)
	server := NewServer(NewLedgerGRPCServer(budgets, goals))
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewLedgerClient(conn), store
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestLedgerGRPC_CalculatePeriod(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.CalculatePeriod(context.Background(), mustStruct(t, map[string]any{
		"kind": "monthly",
		"date": "2023-02-14",
	}))
	require.NoError(t, err)

	fields := resp.AsMap()
	assert.Equal(t, "2023-02-01", fields["start"])
	assert.Equal(t, "2023-02-28", fields["end"])
	assert.Equal(t, float64(28), fields["days"])

	_, err = client.CalculatePeriod(context.Background(), mustStruct(t, map[string]any{"date": "14.02.2023"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLedgerGRPC_EvaluateBudget(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.EvaluateBudget(context.Background(), mustStruct(t, map[string]any{
		"user_id":   "u1",
		"budget_id": "b1",
		"date":      "2024-03-14",
	}))
	require.NoError(t, err)

	fields := resp.AsMap()
	assert.Equal(t, "2024-03-10", fields["period_start"])
	assert.Equal(t, "2024-03-16", fields["period_end"])
	assert.Equal(t, "100", fields["spent_amount"])
	assert.Equal(t, "full", fields["status"])

	_, err = client.EvaluateBudget(context.Background(), mustStruct(t, map[string]any{"user_id": "u1", "budget_id": "missing"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestLedgerGRPC_Contribute(t *testing.T) {
	client, store := setupTestServer(t)
	ctx := context.Background()

	resp, err := client.Contribute(ctx, mustStruct(t, map[string]any{
		"user_id":    "u1",
		"goal_id":    "goal-1",
		"account_id": "acc-1",
		"amount":     "100",
		"date":       "2024-03-14",
	}))
	require.NoError(t, err)

	fields := resp.AsMap()
	assert.Equal(t, "150", fields["account_balance"])
	assert.Equal(t, "500", fields["goal_current_amount"])

	_, err = client.Contribute(ctx, mustStruct(t, map[string]any{
		"user_id":    "u1",
		"goal_id":    "goal-1",
		"account_id": "acc-1",
		"amount":     "1000",
	}))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	account, err := store.GetAccount(ctx, "u1", "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(150)))

	_, err = client.Contribute(ctx, mustStruct(t, map[string]any{
		"user_id":    "u1",
		"goal_id":    "goal-1",
		"account_id": "acc-1",
		"amount":     "ten",
	}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
