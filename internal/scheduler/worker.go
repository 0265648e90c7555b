package scheduler

import (
	"context"
	"errors"
	"fmt"

	"warga_portal_backend/internal/announcements/repository"
	"warga_portal_backend/internal/events"
	"warga_portal_backend/platform/config"
	"warga_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskAnnouncementExpiry, w.handleAnnouncementExpiry)

	return w, nil
}

// handleAnnouncementExpiry fires when an announcement's expires_at passes.
// The expiry may have been pushed back by an edit after the task was
// scheduled, so the timestamp is re-checked before notifying.
func (w *Worker) handleAnnouncementExpiry(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAnnouncementExpiryPayload(task)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(payload.AnnouncementID)
	if err != nil {
		return err
	}

	expired, err := w.repo.IsExpired(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !expired {
		return nil
	}

	w.log.Info("announcement expired", "announcement_id", id)

	if w.bus == nil {
		return nil
	}
	return w.bus.PublishSync(ctx, events.AnnouncementDeleted{
		BaseEvent:      events.NewBaseEvent(),
		AnnouncementID: id,
	})
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
