package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warga_portal_backend/internal/accounts"
	"warga_portal_backend/internal/accounts/adapter"
	"warga_portal_backend/internal/announcements"
	"warga_portal_backend/internal/auth"
	"warga_portal_backend/internal/complaints"
	"warga_portal_backend/internal/documents"
	"warga_portal_backend/internal/email"
	"warga_portal_backend/internal/events"
	apphttp "warga_portal_backend/internal/http"
	"warga_portal_backend/internal/http/router"
	"warga_portal_backend/internal/notification"
	"warga_portal_backend/internal/residents"
	"warga_portal_backend/internal/scheduler"
	"warga_portal_backend/internal/units"
	"warga_portal_backend/migrations"
	"warga_portal_backend/platform/config"
	"warga_portal_backend/platform/db"
	"warga_portal_backend/platform/logger"
	"warga_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	sender := initEmailSender(cfg, log)

	expiryScheduler, expiryWorker, closeScheduler := initExpiryScheduler(cfg, pool, eventBus, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.Register(eventBus)

	authModule := auth.NewModule(pool, cfg, log, val)
	accountsModule := accounts.NewModule(pool, adapter.NewAccountStore(authModule.Service()), eventBus, log, val)
	unitsModule := units.NewModule(pool, val)
	residentsModule := residents.NewModule(pool, val)
	documentsModule := documents.NewModule(pool, val)
	complaintsModule := complaints.NewModule(pool, val)
	announcementsModule := announcements.NewModule(pool, eventBus, expiryScheduler, log, val)
	defer announcementsModule.Close()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			accountsModule,
			unitsModule,
			residentsModule,
			documentsModule,
			complaintsModule,
			announcementsModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: engine}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if expiryWorker != nil {
		g.Go(func() error {
			expiryWorker.Run(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

func initEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email delivery disabled; welcome emails will be logged only")
		return email.NewNoopSender()
	}

	log.Info("email sender initialized", "host", cfg.GetSMTPHost(), "from", cfg.GetEmailFromAddress())
	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// initExpiryScheduler wires the asynq client and worker pair that retires
// announcements at their expiry time. Both are optional; without Redis the
// portal still runs, announcements just stay visible until deleted by hand.
func initExpiryScheduler(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (scheduler.ExpiryScheduler, *scheduler.Worker, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; announcement expiry disabled")
		return nil, nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize expiry scheduler client", "error", err)
		return nil, nil, nil
	}

	worker, err := scheduler.NewWorker(cfg, pool, bus, log)
	if err != nil {
		log.Error("failed to initialize expiry worker", "error", err)
		return client, nil, func() { _ = client.Close() }
	}

	return client, worker, func() { _ = client.Close() }
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
