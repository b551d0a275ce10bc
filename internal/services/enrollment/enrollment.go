// Package services содержит бизнес-логику жизненного цикла заявок на обучение:
// создание, списки, отзыв владельца и смену статуса администратором.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-portal/internal/models"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// ErrCourseNotAvailable возвращается при попытке подать заявку на курс,
// который отсутствует или неактивен на момент отправки формы.
var ErrCourseNotAvailable = errors.New("course is not available")

// ApplicationRepository определяет методы для работы с заявками в хранилище.
type ApplicationRepository interface {
	// CreateApplication добавляет новую заявку и возвращает её ID.
	CreateApplication(ctx context.Context, app models.Application) (int, error)
	// GetApplication возвращает заявку по ID.
	GetApplication(ctx context.Context, id int) (*models.Application, error)
	// ListApplicationsByUsername возвращает заявки пользователя с пагинацией.
	ListApplicationsByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Application, error)
	// ListAllApplications возвращает все заявки с пагинацией.
	ListAllApplications(ctx context.Context, limit, offset int) ([]*models.Application, error)
	// UpdateApplicationFeedback сохраняет отзыв владельца заявки.
	UpdateApplicationFeedback(ctx context.Context, id int, username, feedback string) (int, error)
	// UpdateApplicationStatus выставляет статус заявки.
	UpdateApplicationStatus(ctx context.Context, id int, status string) (int, error)
	// GetApplicationInfo возвращает данные заявки с контактами владельца.
	GetApplicationInfo(ctx context.Context, id int) (*models.ApplicationInfo, error)
}

// CourseRepository определяет доступ к каталогу для проверки курса заявки.
type CourseRepository interface {
	GetCourse(ctx context.Context, id int) (*models.Course, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Notifier отправляет события заявок в брокер уведомлений.
// Все вызовы fire-and-forget: ошибки не возвращаются.
type Notifier interface {
	ApplicationCreated(info *models.ApplicationInfo)
	StatusChanged(info *models.ApplicationInfo)
}

// EnrollmentService реализует машину состояний заявки и правила доступа к ней.
type EnrollmentService struct {
	repo     ApplicationRepository
	courses  CourseRepository
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// NewEnrollmentService создает новый экземпляр EnrollmentService.
func NewEnrollmentService(repo ApplicationRepository, courses CourseRepository, cache Cache, notifier Notifier, log *slog.Logger) *EnrollmentService {
	return &EnrollmentService{
		repo:     repo,
		courses:  courses,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Create создает новую заявку пользователя userName.
//
// Курс перепроверяется по каталогу на момент отправки: курс, деактивированный
// между отрисовкой формы и отправкой, отклоняется. Статус всегда new,
// владелец берется из токена и не принимается от клиента. Повторные заявки
// одного пользователя на тот же курс допускаются.
func (s *EnrollmentService) Create(ctx context.Context, userName string, req models.DummyApplication) (int, error) {
	startDate, err := time.Parse("2006-01-02", req.DesiredStartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid desired start date: %w", err)
	}

	course, err := s.courses.GetCourse(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrCourseNotAvailable
		}
		return 0, err
	}
	if !course.IsActive {
		return 0, ErrCourseNotAvailable
	}

	app := models.Application{
		Username:         userName,
		CourseID:         req.CourseID,
		DesiredStartDate: startDate,
		PaymentMethod:    req.PaymentMethod,
	}

	id, err := s.repo.CreateApplication(ctx, app)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new application", slog.Int("id", id))

	created, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		s.log.Warn("failed to read back created application", slog.Int("id", id), slog.Any("err", err))
		return id, nil
	}
	cacheKey := fmt.Sprintf("application:%d", id)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache application", slog.String("key", cacheKey), slog.Any("err", err))
	}

	if info, err := s.repo.GetApplicationInfo(ctx, id); err != nil {
		s.log.Warn("failed to collect application info for notification", slog.Int("id", id), slog.Any("err", err))
	} else {
		s.notifier.ApplicationCreated(info)
	}

	return id, nil
}

// Read возвращает заявку по ID, используя кеш или хранилище.
func (s *EnrollmentService) Read(ctx context.Context, id int) (*models.Application, error) {
	var result *models.Application
	cacheKey := fmt.Sprintf("application:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read application from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache application", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ListOwn возвращает заявки пользователя, самые свежие первыми.
func (s *EnrollmentService) ListOwn(ctx context.Context, username string, limit, offset int) ([]*models.Application, error) {
	return s.repo.ListApplicationsByUsername(ctx, username, limit, offset)
}

// ListAll возвращает все заявки, самые свежие первыми.
// Только для административной панели.
func (s *EnrollmentService) ListAll(ctx context.Context, limit, offset int) ([]*models.Application, error) {
	return s.repo.ListAllApplications(ctx, limit, offset)
}

// UpdateFeedback сохраняет отзыв владельца заявки. Отзыв можно оставить
// на любом статусе, включая new. Чужая заявка неотличима от отсутствующей.
func (s *EnrollmentService) UpdateFeedback(ctx context.Context, username string, id int, feedback string) error {
	const op = "enrollment.UpdateFeedback"

	rows, err := s.repo.UpdateApplicationFeedback(ctx, id, username, feedback)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	s.log.Info("updated application feedback", slog.Int("id", id))

	cacheKey := fmt.Sprintf("application:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate application cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// UpdateStatus выставляет заявке целевой статус из перечисления.
//
// Порядок переходов new -> in_progress -> completed не проверяется:
// администратор может выставить любой статус в любой момент, включая
// пропуск промежуточных состояний. Это свойство дизайна, а не пропущенная
// валидация.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int, status string) error {
	const op = "enrollment.UpdateStatus"

	rows, err := s.repo.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	s.log.Info("updated application status", slog.Int("id", id), slog.String("status", status))

	cacheKey := fmt.Sprintf("application:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate application cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	if info, err := s.repo.GetApplicationInfo(ctx, id); err != nil {
		s.log.Warn("failed to collect application info for notification", slog.Int("id", id), slog.Any("err", err))
	} else {
		s.notifier.StatusChanged(info)
	}
	return nil
}
