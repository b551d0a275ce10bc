// Package repository реализует хранилище данных на основе PostgreSQL
// для портала записи на курсы. Предоставляет методы работы
// с пользователями, каталогом курсов и заявками на обучение.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, на которые опираются сервисы и обработчики.
var (
	// ErrNotFound запись отсутствует либо не принадлежит запрашивающему.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken нарушена уникальность логина.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken нарушена уникальность email.
	ErrEmailTaken = errors.New("email already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, курсами и заявками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'applications'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table applications missing or query error: %w", err)
	}
	return nil
}
