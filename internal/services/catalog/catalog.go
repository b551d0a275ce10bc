// Package services содержит бизнес-логику каталога курсов и его кеширование.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-portal/internal/models"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// activeCoursesKey ключ кеша списка активных курсов.
const activeCoursesKey = "courses:active"

// CourseRepository определяет методы для работы с курсами в хранилище.
type CourseRepository interface {
	// CreateCourse добавляет новый курс и возвращает его ID.
	CreateCourse(ctx context.Context, course models.Course) (int, error)
	// UpdateCourse обновляет курс по ID.
	UpdateCourse(ctx context.Context, course models.Course, id int) (int, error)
	// GetCourse возвращает курс по ID.
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	// ListActiveCourses возвращает активные курсы.
	ListActiveCourses(ctx context.Context) ([]*models.Course, error)
	// ListAllCourses возвращает весь каталог.
	ListAllCourses(ctx context.Context) ([]*models.Course, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога курсов.
type CatalogService struct {
	repo  CourseRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CourseRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListActive возвращает активные курсы, используя кеш или хранилище.
func (s *CatalogService) ListActive(ctx context.Context) ([]*models.Course, error) {
	var result []*models.Course
	found, err := s.cache.Get(activeCoursesKey, &result)
	if err != nil {
		s.log.Warn("failed to read active courses from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListActiveCourses(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(activeCoursesKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache active courses", slog.Any("err", err))
	}
	return result, nil
}

// ListAll возвращает весь каталог без кеширования.
func (s *CatalogService) ListAll(ctx context.Context) ([]*models.Course, error) {
	return s.repo.ListAllCourses(ctx)
}

// Create добавляет курс в каталог и инвалидирует кеш активных курсов.
func (s *CatalogService) Create(ctx context.Context, req models.DummyCourse) (int, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    isActive,
	}

	id, err := s.repo.CreateCourse(ctx, course)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new course", slog.Int("id", id))

	if err := s.cache.Invalidate(activeCoursesKey); err != nil {
		s.log.Warn("failed to invalidate active courses cache", slog.Any("err", err))
	}
	return id, nil
}

// Update обновляет курс и инвалидирует кеш активных курсов.
// Деактивация курса не затрагивает уже созданные заявки.
func (s *CatalogService) Update(ctx context.Context, req models.DummyCourse, id int) error {
	const op = "catalog.Update"

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    isActive,
	}

	rows, err := s.repo.UpdateCourse(ctx, course, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	s.log.Info("updated course", slog.Int("id", id))

	if err := s.cache.Invalidate(activeCoursesKey); err != nil {
		s.log.Warn("failed to invalidate active courses cache", slog.Any("err", err))
	}
	return nil
}
