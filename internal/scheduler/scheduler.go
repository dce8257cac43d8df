package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// stopTimeout - сколько ждать завершения запущенных задач при остановке
const stopTimeout = 30 * time.Second

// Job - плановая задача
type Job func(ctx context.Context) error

// Scheduler запускает плановые задачи по cron-расписанию.
// Паника в задаче перехватывается, повторный запуск пропускается, пока предыдущий не завершился.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	stop context.CancelFunc
}

func New() *Scheduler {
	l := cron.PrintfLogger(log.Default())
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l))),
		ctx:  ctx,
		stop: cancel,
	}
}

// AddJob регистрирует задачу. schedule - стандартное cron-выражение или дескриптор (@daily, @every 1h).
func (s *Scheduler) AddJob(schedule, name string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		started := time.Now()
		if err := job(s.ctx); err != nil {
			log.Printf("Scheduled job %s failed after %v: %v", name, time.Since(started), err)
			return
		}
		log.Printf("Scheduled job %s finished in %v", name, time.Since(started))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, name, err)
	}
	log.Printf("Scheduled job %s (%s)", name, schedule)
	return nil
}

// Run запускает планировщик и блокируется до отмены ctx
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()

	log.Println("Stopping scheduler...")
	s.stop()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		log.Println("Scheduler stopped")
	case <-time.After(stopTimeout):
		log.Println("Scheduler stop timed out, abandoning running jobs")
	}
	return nil
}
