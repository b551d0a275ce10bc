package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

// AdminMiddleware пропускает только запросы с ролью администратора.
//
// Ответ для обычного пользователя совпадает с ответом для
// неаутентифицированного запроса: наличие административных
// маршрутов не раскрывается.
func AdminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != models.RoleAdmin {
				log.Error("admin access denied", slog.String("role", role))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
