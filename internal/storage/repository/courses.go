package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-portal/internal/models"
)

// CreateCourse вставляет новый курс и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (title, description, is_active)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Description, course.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateCourse обновляет курс по ID и возвращает количество изменённых строк.
// Деактивация курса не затрагивает существующие заявки.
func (s *Storage) UpdateCourse(ctx context.Context, course models.Course, id int) (int, error) {
	const op = "storage.UpdateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = $1, description = $2, is_active = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query,
		course.Title, course.Description, course.IsActive, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetCourse возвращает курс по его ID.
func (s *Storage) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.GetCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, is_active
			  FROM courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Course
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListActiveCourses возвращает список активных курсов.
// Набор запрашивается заново при каждом обращении: заявка валидируется
// по состоянию каталога на момент отправки, а не на момент отрисовки формы.
func (s *Storage) ListActiveCourses(ctx context.Context) ([]*models.Course, error) {
	const op = "storage.ListActiveCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, is_active
			  FROM courses
			  WHERE is_active = true
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllCourses возвращает весь каталог, включая неактивные курсы.
func (s *Storage) ListAllCourses(ctx context.Context) ([]*models.Course, error) {
	const op = "storage.ListAllCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, is_active
			  FROM courses
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
