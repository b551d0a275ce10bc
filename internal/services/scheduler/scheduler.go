// Package services планирует рассылку напоминаний о предстоящем обучении.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-portal/internal/models"
)

// ApplicationFinder ищет заявки, обучение по которым скоро начнётся.
type ApplicationFinder interface {
	FindApplicationsStartingTomorrow(ctx context.Context) ([]*models.ApplicationInfo, error)
}

// Publisher публикует напоминания в брокер уведомлений.
type Publisher interface {
	Upcoming(info *models.ApplicationInfo)
}

// Scheduler периодически проверяет заявки с завтрашней датой начала
// и публикует напоминания для почтовой рассылки.
type Scheduler struct {
	finder    ApplicationFinder
	publisher Publisher
	log       *slog.Logger
	interval  time.Duration
}

// New создает новый экземпляр Scheduler.
func New(finder ApplicationFinder, publisher Publisher, log *slog.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		finder:    finder,
		publisher: publisher,
		log:       log,
		interval:  interval,
	}
}

// Run запускает цикл проверки до отмены контекста.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			if err := s.ProcessOnce(ctx); err != nil {
				s.log.Error("failed to process upcoming applications", slog.Any("err", err))
			}
		}
	}
}

// ProcessOnce выполняет одну итерацию: находит заявки с началом обучения
// завтра и публикует напоминание по каждой.
func (s *Scheduler) ProcessOnce(ctx context.Context) error {
	infos, err := s.finder.FindApplicationsStartingTomorrow(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return nil
	}

	s.log.Info("found applications starting tomorrow", slog.Int("count", len(infos)))
	for _, info := range infos {
		s.publisher.Upcoming(info)
	}
	return nil
}
