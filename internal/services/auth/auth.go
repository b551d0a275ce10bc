// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/course-portal/internal/lib/password"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

// ErrInvalidCredentials возвращается при неверном логине или пароле,
// в том числе при неверном текущем пароле во время его смены.
// Текст ошибки не уточняет причину.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по логину или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateUserProfile обновляет ФИО, телефон и email пользователя.
	UpdateUserProfile(ctx context.Context, username, fullName, phone, email string) (int, error)

	// UpdateUserPassword заменяет хэш пароля пользователя.
	UpdateUserPassword(ctx context.Context, username, passwordHash string) (int, error)
}

// AuthService отвечает за регистрацию, авторизацию и редактирование профиля.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
func (s *AuthService) Register(ctx context.Context, username, fullName, phone, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		FullName:     fullName,
		Phone:        phone,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// GetProfile возвращает профиль пользователя.
func (s *AuthService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetUserByUsername(ctx, username)
}

// UpdateProfile обновляет профиль пользователя и, при непустом newPassword,
// меняет пароль. Смена пароля требует подтверждения текущим паролем.
//
// При успешной смене пароля возвращается свежий JWT: живая сессия
// перепривязывается к новому паролю без повторного входа.
func (s *AuthService) UpdateProfile(ctx context.Context, username, fullName, phone, email, currentPassword, newPassword string) (string, error) {
	const op = "auth.UpdateProfile"

	var user *models.User
	if newPassword != "" {
		var err error
		user, err = s.users.GetUserByUsername(ctx, username)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
			return "", ErrInvalidCredentials
		}
	}

	if _, err := s.users.UpdateUserProfile(ctx, username, fullName, phone, email); err != nil {
		return "", err
	}

	if newPassword == "" {
		return "", nil
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.users.UpdateUserPassword(ctx, username, hashed); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
