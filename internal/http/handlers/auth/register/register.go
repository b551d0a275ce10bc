// Package register реализует HTTP-обработчик регистрации новых пользователей.
//
// Request принимает логин, ФИО, телефон, электронную почту и пароль,
// валидирует их по правилам портала и делегирует создание учётной записи
// сервису аутентификации. Все новые учётные записи получают роль user.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/lib/validate"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// Request — входные данные для регистрации.
type Request struct {
	Username string `json:"username" validate:"required,login,max=150"`
	FullName string `json:"full_name" validate:"required,fullname,max=150"`
	Phone    string `json:"phone" validate:"required,phone_ru"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, fullName, phone, email, rawPassword string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает новую учетную запись с ролью user. Логин и почта должны быть уникальны.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Логин или почта уже заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	uid, err := h.service.Register(r.Context(), req.Username, req.FullName, req.Phone, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			log.Error("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("username is already taken"))
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("email already taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email is already taken"))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	log.Info("user registered", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"username": req.Username,
		"message":  "user created successfully",
	}))
}
