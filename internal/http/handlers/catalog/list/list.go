// Package list реализует HTTP-обработчик каталога активных курсов.
//
// В списке каждому курсу соответствует короткое описание; полное описание
// возвращается отдельным полем для карточки курса. Неактивные курсы
// в выдачу не попадают.
package list

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

// Handler обрабатывает запросы каталога курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	ListActive(ctx context.Context) ([]*models.Course, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

type courseItem struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
}

// ServeHTTP godoc
// @Summary Каталог активных курсов
// @Description Возвращает список активных курсов с коротким и полным описанием.
// @Tags Courses
// @Produce  json
// @Success 200 {object} map[string]any "Список курсов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courses, err := h.service.ListActive(r.Context())
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list courses"))
		return
	}

	items := make([]courseItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, courseItem{
			ID:               c.ID,
			Title:            c.Title,
			ShortDescription: c.ShortDescription(),
			Description:      c.Description,
		})
	}

	log.Info("courses listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"courses_count": len(items),
		"courses":       items,
	}))
}
