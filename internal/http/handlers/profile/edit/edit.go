// Package edit реализует HTTP-обработчик редактирования профиля пользователя.
//
// Пользователь может изменить ФИО, телефон и почту, а также сменить пароль.
// Смена пароля требует действующий пароль и подтверждение нового; при успешной
// смене в ответе возвращается свежий JWT, старый токен продолжать использовать
// не следует.
package edit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/lib/validate"
	services "github.com/magabrotheeeer/course-portal/internal/services/auth"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// Request — входные данные редактирования профиля.
// Поля смены пароля опциональны и применяются только все вместе.
type Request struct {
	FullName        string `json:"full_name" validate:"required,fullname,max=150"`
	Phone           string `json:"phone" validate:"required,phone_ru"`
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"current_password" validate:"required_with=NewPassword"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
}

// Handler обрабатывает запросы редактирования профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateProfile(ctx context.Context, username, fullName, phone, email, currentPassword, newPassword string) (string, error)
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
// @Summary Редактирование профиля
// @Description Обновляет ФИО, телефон и почту пользователя, опционально меняет пароль. При смене пароля возвращает свежий JWT.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param request body Request true "Новые данные профиля"
// @Success 200 {object} map[string]any "Профиль обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный действующий пароль"
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.edit"

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
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	freshToken, err := h.service.UpdateProfile(r.Context(), username, req.FullName, req.Phone, req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Error("wrong current password", slog.String("username", username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("current password is incorrect"))
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("email already taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email is already taken"))
		default:
			log.Error("failed to update profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update profile"))
		}
		return
	}

	data := map[string]any{
		"message": "profile updated successfully",
	}
	if freshToken != "" {
		data["token"] = freshToken
	}
	log.Info("profile updated", slog.String("username", username), slog.Bool("password_changed", freshToken != ""))
	render.JSON(w, r, response.StatusOKWithData(data))
}
