// Package courseupdate реализует HTTP-обработчик редактирования курса администратором.
//
// Деактивация курса останавливает приём новых заявок, но не затрагивает
// уже созданные.
package courseupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/models"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// Handler управляет HTTP-запросами на редактирование курсов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики редактирования курса.
type Service interface {
	Update(ctx context.Context, req models.DummyCourse, id int) error
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
// @Summary Редактировать курс
// @Description Обновляет название, описание и активность курса.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID курса"
// @Param request body models.DummyCourse true "Новые данные курса"
// @Success 200 {object} map[string]any "Курс обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/courses/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.courseupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCourse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	if err := h.service.Update(r.Context(), req, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("course not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
			return
		}
		log.Error("failed to update course", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update course"))
		return
	}

	log.Info("course updated", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "course updated successfully",
	}))
}
