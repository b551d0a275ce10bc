package courseportal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-portal/internal/cache"
	"github.com/magabrotheeeer/course-portal/internal/config"
	"github.com/magabrotheeeer/course-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/course-portal/internal/migrations"
	"github.com/magabrotheeeer/course-portal/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/course-portal/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/course-portal/internal/services/catalog"
	enrollmentservice "github.com/magabrotheeeer/course-portal/internal/services/enrollment"
	notifierservice "github.com/magabrotheeeer/course-portal/internal/services/notifier"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер портала и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: хранилище, миграции, кеш, брокер уведомлений,
// сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	notifier := notifierservice.New(ch, logger)

	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	enrollmentService := enrollmentservice.NewEnrollmentService(db, db, cacheRedis, notifier, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db, cfg.MediaRoot, authService, catalogService, enrollmentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
