// Package view реализует HTTP-обработчик личного кабинета пользователя.
//
// Возвращает данные профиля и список заявок текущего пользователя,
// самые свежие заявки идут первыми. Хэш пароля в ответ не попадает.
package view

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

// Handler обрабатывает запросы личного кабинета.
type Handler struct {
	log         *slog.Logger
	auth        AuthService
	enrollments EnrollmentService
}

// AuthService описывает интерфейс получения профиля пользователя.
type AuthService interface {
	GetProfile(ctx context.Context, username string) (*models.User, error)
}

// EnrollmentService описывает интерфейс получения заявок пользователя.
type EnrollmentService interface {
	ListOwn(ctx context.Context, username string, limit, offset int) ([]*models.Application, error)
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, auth AuthService, enrollments EnrollmentService) *Handler {
	return &Handler{
		log:         log,
		auth:        auth,
		enrollments: enrollments,
	}
}

// ServeHTTP godoc
// @Summary Личный кабинет
// @Description Возвращает профиль текущего пользователя и список его заявок.
// @Tags Profile
// @Produce  json
// @Param limit query int false "Максимум заявок в ответе" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Профиль и заявки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.view"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.auth.GetProfile(r.Context(), username)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get profile"))
		return
	}

	applications, err := h.enrollments.ListOwn(r.Context(), username, limit, offset)
	if err != nil {
		log.Error("failed to list applications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list applications"))
		return
	}

	log.Info("profile loaded", slog.Int("applications", len(applications)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile": map[string]any{
			"username":  user.Username,
			"full_name": user.FullName,
			"phone":     user.Phone,
			"email":     user.Email,
		},
		"applications_count": len(applications),
		"applications":       applications,
	}))
}
