// Package courselist реализует HTTP-обработчик списка всех курсов
// для административной панели, включая неактивные.
package courselist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

// Handler обрабатывает запросы списка всех курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка всех курсов.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Course, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Все курсы
// @Description Возвращает все курсы, включая неактивные.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список курсов"
// @Failure 401 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.courselist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courses, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list courses"))
		return
	}

	log.Info("courses listed", slog.Int("count", len(courses)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"courses_count": len(courses),
		"courses":       courses,
	}))
}
