package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/taskdeck/pkg/app"
	"github.com/ghuser/taskdeck/pkg/cache"
	"github.com/ghuser/taskdeck/pkg/config"
	"github.com/ghuser/taskdeck/pkg/database"
	"github.com/ghuser/taskdeck/pkg/events"
	"github.com/ghuser/taskdeck/pkg/logger"
	"github.com/ghuser/taskdeck/pkg/telemetry"
	"github.com/ghuser/taskdeck/pkg/workflows"
	todoWorkflows "github.com/ghuser/taskdeck/services/todo/application/workflows"
	todoEvents "github.com/ghuser/taskdeck/services/todo/domain/events"
	todoPostgres "github.com/ghuser/taskdeck/services/todo/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()
	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	appConfig := &app.Application{
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	w, err := startRetentionWorker(ctx, cfg, appConfig)
	if err != nil {
		log.Error("failed to start retention worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer w.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, todoEvents.TopicTodoCreated, handleTodoCreated(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", todoEvents.TopicTodoCreated,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{todoEvents.TopicTodoCreated})
	return nil
}

// handleTodoCreated returns a handler for todo.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache so subsequent Get calls are served from cache.
func handleTodoCreated(a *app.Application) func(context.Context, *message.Message) error {
	todoCache := cache.NewTodoCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt todoEvents.TodoCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := todoCache.Set(ctx, &cache.CachedTodo{
			ID:          evt.TodoID,
			OwnerID:     evt.OwnerID,
			Title:       evt.Title,
			Description: evt.Description,
			Completed:   evt.Completed,
			CreatedAt:   evt.OccurredAt,
			UpdatedAt:   evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for todo.created",
				"todo_id", evt.TodoID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"todo_id", evt.TodoID, "owner_id", evt.OwnerID)
		}

		return nil
	}
}

// startRetentionWorker hosts the completed-todo purge workflow on the
// retention task queue and kicks off its nightly cron schedule.
func startRetentionWorker(ctx context.Context, cfg *config.Config, a *app.Application) (worker.Worker, error) {
	repo := todoPostgres.NewTodoRepository(a.Db, nil)

	w := worker.New(a.TemporalClient.Client, todoWorkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflow(todoWorkflows.PurgeCompletedTodos)
	w.RegisterActivity(todoWorkflows.NewPurgeActivities(repo).PurgeCompleted)

	if err := w.Start(); err != nil {
		return nil, err
	}

	// Idempotent cron kickoff: starting an already-scheduled workflow with the
	// same ID fails, which is fine — the schedule is already in place.
	_, err := a.TemporalClient.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           todoWorkflows.PurgeWorkflowID,
		TaskQueue:    todoWorkflows.TaskQueue,
		CronSchedule: "0 3 * * *",
	}, todoWorkflows.PurgeCompletedTodos, todoWorkflows.PurgeInput{
		Retention: cfg.CompletedTodoRetention,
	})
	if err != nil {
		a.Logger.Warn("purge workflow not started (may already be scheduled)", "error", err)
	} else {
		a.Logger.Info("purge workflow scheduled",
			"workflow_id", todoWorkflows.PurgeWorkflowID,
			"retention", cfg.CompletedTodoRetention)
	}

	return w, nil
}
