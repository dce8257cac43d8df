package ledger_service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"finance-ledger/config"
	_ "finance-ledger/docs" // Swagger docs
	"finance-ledger/internal/api/rest"
	"finance-ledger/internal/grpc"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// StartLedgerService запускает REST и gRPC API журнала
func StartLedgerService() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализация зависимостей
	deps, err := InitializeDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	// Настройка REST API
	handlers := rest.NewHandlers(deps.Accounts, deps.Transactions, deps.Budgets, deps.Goals)
	router := rest.SetupRouter(handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.LedgerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Ledger Service starting on port %d", cfg.Server.LedgerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		grpcServer := grpc.NewLedgerGRPCServer(deps.Budgets, deps.Goals)
		return grpc.StartGRPCServer(gctx, cfg, grpcServer)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Ledger Service stopped with error: %v", err)
		return
	}
	log.Println("Server exited")
}
