// Package scheduler собирает приложение планировщика напоминаний.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-portal/internal/config"
	"github.com/magabrotheeeer/course-portal/internal/rabbitmq"
	notifierservice "github.com/magabrotheeeer/course-portal/internal/services/notifier"
	schedulerservice "github.com/magabrotheeeer/course-portal/internal/services/scheduler"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

const checkInterval = time.Hour

// App представляет приложение планировщика.
type App struct {
	scheduler *schedulerservice.Scheduler
	conn      *amqp.Connection
	ch        *amqp.Channel
	logger    *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	for range 10 {
		if err := db.CheckDatabaseReady(ctx); err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err := waitForDB(ctx, db); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	notifier := notifierservice.New(ch, logger)
	scheduler := schedulerservice.New(db, notifier, logger, checkInterval)

	return &App{
		scheduler: scheduler,
		conn:      conn,
		ch:        ch,
		logger:    logger,
	}, nil
}

// Run запускает планировщик до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Run(ctx)

	a.logger.Info("shutting down scheduler service")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
