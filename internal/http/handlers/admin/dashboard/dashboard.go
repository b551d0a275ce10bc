// Package dashboard реализует HTTP-обработчик административной панели заявок.
//
// Возвращает заявки всех пользователей, самые свежие первыми.
// Доступ только с ролью администратора.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

// Handler обрабатывает запросы административной панели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка всех заявок.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.Application, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Панель заявок администратора
// @Description Возвращает заявки всех пользователей, отсортированные от новых к старым.
// @Tags Admin
// @Produce  json
// @Param limit query int false "Максимум заявок в ответе" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/applications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

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

	applications, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list applications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list applications"))
		return
	}

	log.Info("applications listed", slog.Int("count", len(applications)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"applications_count": len(applications),
		"applications":       applications,
	}))
}
