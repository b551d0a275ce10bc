// Package health реализует HTTP-обработчик проверки готовности сервера.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
)

// Handler обрабатывает запросы проверки готовности.
type Handler struct {
	log     *slog.Logger
	checker ReadyChecker
}

// ReadyChecker описывает проверку готовности хранилища.
type ReadyChecker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// New создает новый Handler с переданными логгером и проверкой хранилища.
func New(log *slog.Logger, checker ReadyChecker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Description Проверяет доступность базы данных и готовность сервера принимать запросы.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Сервер готов"
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.checker.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
