package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/course-portal/internal/models"
)

// mapUniqueViolation конвертирует нарушение уникальных ограничений таблицы users
// в доменные ошибки, чтобы обработчики могли вернуть полевую ошибку формы.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrUsernameTaken
	case "users_email_key":
		return ErrEmailTaken
	}
	return err
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (username, full_name, phone, email, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.FullName, user.Phone, user.Email,
		user.PasswordHash, user.Role).Scan(&newUID); err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return "", fmt.Errorf("%s: %w", op, mapped)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, full_name, phone, email, password_hash, role
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	if err := row.Scan(&u.UID, &u.Username, &u.FullName, &u.Phone,
		&u.Email, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUserProfile обновляет профиль пользователя (ФИО, телефон, email)
// и возвращает количество изменённых строк.
func (s *Storage) UpdateUserProfile(ctx context.Context, username, fullName, phone, email string) (int, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET full_name = $1, phone = $2, email = $3
			  WHERE username = $4`
	result, err := s.DB.ExecContext(ctx, query, fullName, phone, email, username)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return 0, fmt.Errorf("%s: %w", op, mapped)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateUserPassword заменяет хэш пароля пользователя.
func (s *Storage) UpdateUserPassword(ctx context.Context, username, passwordHash string) (int, error) {
	const op = "storage.UpdateUserPassword"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET password_hash = $1 WHERE username = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
