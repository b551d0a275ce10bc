// Package status реализует HTTP-обработчик смены статуса заявки администратором.
//
// Принимает любой статус из перечисления без проверки порядка переходов.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// Request — входные данные смены статуса.
type Request struct {
	Status string `json:"status" validate:"required,oneof=new in_progress completed"`
}

// Handler обрабатывает запросы смены статуса заявки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, id int, status string) error
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
// @Summary Сменить статус заявки
// @Description Выставляет заявке любой статус из перечисления new, in_progress, completed.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID заявки"
// @Param request body Request true "Целевой статус"
// @Success 200 {object} map[string]any "Статус обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 422 {object} response.ErrorResponse "Статус вне перечисления"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/applications/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.status"

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
	log.Info("request body decoded", slog.String("status", req.Status))

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

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("application not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("application not found"))
			return
		}
		log.Error("failed to update status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update status"))
		return
	}

	log.Info("status updated", slog.Int("id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": fmt.Sprintf("status of application #%d updated", id),
		"status":  req.Status,
	}))
}
