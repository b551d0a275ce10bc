// Package models содержит доменные структуры портала: пользователей,
// курсы и заявки на обучение, а также вспомогательные типы для приёма
// данных из внешних источников (JSON-запросы).
package models

// Роли пользователей.
const (
	RoleUser  = "user"  // обычный пользователь
	RoleAdmin = "admin" // администратор
)

// User представляет зарегистрированного пользователя портала.
type User struct {
	UID          string // Уникальный идентификатор пользователя
	Username     string // Логин (уникальный)
	FullName     string // ФИО
	Phone        string // Телефон в формате 8(XXX)XXX-XX-XX
	Email        string // Электронная почта (уникальная)
	PasswordHash string // Хэш пароля пользователя
	Role         string // Роль пользователя, admin или user
}
