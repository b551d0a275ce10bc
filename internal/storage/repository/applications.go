package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-portal/internal/models"
)

// CreateApplication вставляет новую заявку и возвращает её ID.
// Статус и дата создания выставляются базой данных.
func (s *Storage) CreateApplication(ctx context.Context, app models.Application) (int, error) {
	const op = "storage.CreateApplication"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO applications (username, course_id, desired_start_date, payment_method)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		app.Username, app.CourseID, app.DesiredStartDate, app.PaymentMethod).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetApplication возвращает заявку по её ID вместе с названием курса.
func (s *Storage) GetApplication(ctx context.Context, id int) (*models.Application, error) {
	const op = "storage.GetApplication"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.username, a.course_id, c.title, a.desired_start_date,
			      a.payment_method, a.status, a.created_at, a.feedback
			  FROM applications a
			  JOIN courses c ON a.course_id = c.id
			  WHERE a.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Application
	if err := row.Scan(&result.ID, &result.Username, &result.CourseID, &result.CourseTitle,
		&result.DesiredStartDate, &result.PaymentMethod, &result.Status,
		&result.CreatedAt, &result.Feedback); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListApplicationsByUsername возвращает заявки пользователя с пагинацией,
// самые свежие первыми.
func (s *Storage) ListApplicationsByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Application, error) {
	const op = "storage.ListApplicationsByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.username, a.course_id, c.title, a.desired_start_date,
			      a.payment_method, a.status, a.created_at, a.feedback
			  FROM applications a
			  JOIN courses c ON a.course_id = c.id
			  WHERE a.username = $1
			  ORDER BY a.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Application
	for rows.Next() {
		var item models.Application
		if err := rows.Scan(&item.ID, &item.Username, &item.CourseID, &item.CourseTitle,
			&item.DesiredStartDate, &item.PaymentMethod, &item.Status,
			&item.CreatedAt, &item.Feedback); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllApplications возвращает все заявки с пагинацией, самые свежие первыми.
// Используется панелью администратора, выборка не ограничена владельцем.
func (s *Storage) ListAllApplications(ctx context.Context, limit, offset int) ([]*models.Application, error) {
	const op = "storage.ListAllApplications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.username, a.course_id, c.title, a.desired_start_date,
			      a.payment_method, a.status, a.created_at, a.feedback
			  FROM applications a
			  JOIN courses c ON a.course_id = c.id
			  ORDER BY a.created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Application
	for rows.Next() {
		var item models.Application
		if err := rows.Scan(&item.ID, &item.Username, &item.CourseID, &item.CourseTitle,
			&item.DesiredStartDate, &item.PaymentMethod, &item.Status,
			&item.CreatedAt, &item.Feedback); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateApplicationFeedback сохраняет отзыв владельца заявки.
// Выборка ограничена владельцем: чужая заявка выглядит как отсутствующая,
// чтобы не подтверждать её существование.
func (s *Storage) UpdateApplicationFeedback(ctx context.Context, id int, username, feedback string) (int, error) {
	const op = "storage.UpdateApplicationFeedback"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE applications
			  SET feedback = $1
			  WHERE id = $2 AND username = $3`
	result, err := s.DB.ExecContext(ctx, query, feedback, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateApplicationStatus выставляет статус заявки. Выборка не ограничена
// владельцем: операция доступна только администратору. Переход не сверяется
// с номинальным порядком статусов.
func (s *Storage) UpdateApplicationStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateApplicationStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE applications SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetApplicationInfo возвращает данные заявки вместе с контактами владельца
// для почтовых уведомлений.
func (s *Storage) GetApplicationInfo(ctx context.Context, id int) (*models.ApplicationInfo, error) {
	const op = "storage.GetApplicationInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, u.email, u.username, u.full_name, c.title,
			      a.desired_start_date, a.status
			  FROM applications a
			  JOIN users u ON a.username = u.username
			  JOIN courses c ON a.course_id = c.id
			  WHERE a.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var info models.ApplicationInfo
	if err := row.Scan(&info.ID, &info.Email, &info.Username, &info.FullName,
		&info.CourseTitle, &info.DesiredStartDate, &info.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &info, nil
}

// FindApplicationsStartingTomorrow находит незавершённые заявки,
// обучение по которым должно начаться завтра.
func (s *Storage) FindApplicationsStartingTomorrow(ctx context.Context) ([]*models.ApplicationInfo, error) {
	const op = "storage.FindApplicationsStartingTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, u.email, u.username, u.full_name, c.title,
			      a.desired_start_date, a.status
			  FROM applications a
			  JOIN users u ON a.username = u.username
			  JOIN courses c ON a.course_id = c.id
			  WHERE a.desired_start_date = CURRENT_DATE + INTERVAL '1 day'
			      AND a.status <> 'completed';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ApplicationInfo
	for rows.Next() {
		var info models.ApplicationInfo
		if err = rows.Scan(&info.ID, &info.Email, &info.Username, &info.FullName,
			&info.CourseTitle, &info.DesiredStartDate, &info.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
