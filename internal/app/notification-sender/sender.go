// Package sender собирает приложение рассылки почтовых уведомлений.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-portal/internal/config"
	"github.com/magabrotheeeer/course-portal/internal/lib/smtp"
	"github.com/magabrotheeeer/course-portal/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/course-portal/internal/services/sender"
)

// App представляет приложение почтовой рассылки.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New создает новый экземпляр приложения почтовой рассылки.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run подписывается на очереди уведомлений и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	if err := rabbitmq.ConsumerMessage(ctx, a.ch, "notification.created", a.senderService.SendInfoApplicationCreated); err != nil {
		a.logger.Error("failed to start notification.created consumer", slog.Any("err", err))
		return err
	}

	if err := rabbitmq.ConsumerMessage(ctx, a.ch, "notification.status", a.senderService.SendInfoStatusChanged); err != nil {
		a.logger.Error("failed to start notification.status consumer", slog.Any("err", err))
		return err
	}

	if err := rabbitmq.ConsumerMessage(ctx, a.ch, "notification.upcoming", a.senderService.SendInfoUpcomingCourse); err != nil {
		a.logger.Error("failed to start notification.upcoming consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
