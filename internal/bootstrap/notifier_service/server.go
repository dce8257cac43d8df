package notifier_service

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
	"finance-ledger/internal/api/rest"
	"finance-ledger/internal/scheduler"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "notifier-service"
	shutdownTimeout = 10 * time.Second
)

// StartNotifierService запускает обработку событий журнала, плановую проверку бюджетов и API уведомлений
func StartNotifierService() {
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

	sched := scheduler.New()
	if err := sched.AddJob(cfg.Ledger.BudgetSweepSchedule, "budget_sweep", deps.Notifier.Sweep); err != nil {
		log.Fatalf("Failed to schedule budget sweep: %v", err)
	}

	// Настройка REST API
	router := gin.New()
	router.Use(rest.CORSMiddleware())
	router.Use(gin.Logger(), gin.Recovery())
	SetupRoutes(router, deps.RedisClient, deps.Notifier.Sweep)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.NotifierPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if deps.Consumer != nil {
		g.Go(func() error {
			log.Println("Starting event consumer...")
			if err := deps.Consumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("event consumer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return sched.Run(gctx)
	})

	g.Go(func() error {
		log.Printf("Notifier Service starting on port %d", cfg.Server.NotifierPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down services...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Notifier Service stopped with error: %v", err)
		return
	}
	log.Println("Services exited")
}
