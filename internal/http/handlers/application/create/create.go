// Package create реализует HTTP-обработчик подачи заявки на обучение.
//
// Handler принимает JSON с данными заявки, валидирует их, извлекает имя
// пользователя из контекста и вызывает бизнес-логику создания заявки.
// Владелец заявки всегда берется из токена, а не из тела запроса.
package create

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
	"github.com/magabrotheeeer/course-portal/internal/models"
	services "github.com/magabrotheeeer/course-portal/internal/services/enrollment"
)

// Handler управляет HTTP-запросами на подачу заявок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания заявки.
type Service interface {
	Create(ctx context.Context, userName string, req models.DummyApplication) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подать заявку на обучение
// @Description Создает заявку текущего пользователя на активный курс. Возвращает ID созданной заявки.
// @Tags Applications
// @Accept  json
// @Produce  json
// @Param request body models.DummyApplication true "Данные новой заявки"
// @Success 200 {object} map[string]any "Заявка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или курс недоступен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /applications [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.application.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyApplication
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

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

	id, err := h.service.Create(r.Context(), username, req)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotAvailable) {
			log.Error("course is not available", slog.Int("course_id", req.CourseID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("course is not available"))
			return
		}
		log.Error("failed to create application", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create application"))
		return
	}

	log.Info("success to create application", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"message": "application submitted successfully",
	}))
}
