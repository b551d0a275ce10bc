// Package validate создает валидатор входных данных с кастомными правилами портала.
//
// Помимо стандартных правил go-playground/validator регистрируются три
// доменных правила: login (логин пользователя), fullname (ФИО кириллицей)
// и phone_ru (телефон в формате 8(XXX)XXX-XX-XX).
package validate

import (
	"regexp"

	"github.com/go-playground/validator"
)

var (
	// Логин: латинская буква в начале, далее буквы, цифры и подчёркивания, минимум 6 символов.
	loginRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{5,}$`)
	// ФИО: кириллица, пробелы и дефисы, начинается с буквы.
	fullNameRegexp = regexp.MustCompile(`^[А-Яа-яЁё][А-Яа-яЁё\s-]*$`)
	// Телефон: 8(XXX)XXX-XX-XX.
	phoneRegexp = regexp.MustCompile(`^8\(\d{3}\)\d{3}-\d{2}-\d{2}$`)
)

// New возвращает валидатор с зарегистрированными правилами портала.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return loginRegexp.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullNameRegexp.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone_ru", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	return v
}
