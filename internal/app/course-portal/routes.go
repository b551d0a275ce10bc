// Package courseportal собирает HTTP-приложение портала: маршруты,
// middleware и жизненный цикл сервера.
package courseportal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/course-portal/internal/http/handlers/admin/coursecreate"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/admin/courselist"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/admin/courseupdate"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/admin/status"
	applicationcreate "github.com/magabrotheeeer/course-portal/internal/http/handlers/application/create"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/application/feedback"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/auth/register"
	cataloglist "github.com/magabrotheeeer/course-portal/internal/http/handlers/catalog/list"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/health"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/home"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/profile/edit"
	"github.com/magabrotheeeer/course-portal/internal/http/handlers/profile/view"
	"github.com/magabrotheeeer/course-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-portal/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/course-portal/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/course-portal/internal/services/catalog"
	enrollmentservice "github.com/magabrotheeeer/course-portal/internal/services/enrollment"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	db *repository.Storage,
	mediaRoot string,
	authService *authservice.AuthService,
	catalogService *catalogservice.CatalogService,
	enrollmentService *enrollmentservice.EnrollmentService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/", home.New(logger, mediaRoot).ServeHTTP)
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profile", view.New(logger, authService, enrollmentService).ServeHTTP)
			r.Put("/profile", edit.New(logger, authService).ServeHTTP)
			r.Get("/courses", cataloglist.New(logger, catalogService).ServeHTTP)
			r.Post("/applications", applicationcreate.New(logger, enrollmentService).ServeHTTP)
			r.Put("/applications/{id}/feedback", feedback.New(logger, enrollmentService).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))
				r.Get("/admin/applications", dashboard.New(logger, enrollmentService).ServeHTTP)
				r.Put("/admin/applications/{id}/status", status.New(logger, enrollmentService).ServeHTTP)
				r.Get("/admin/courses", courselist.New(logger, catalogService).ServeHTTP)
				r.Post("/admin/courses", coursecreate.New(logger, catalogService).ServeHTTP)
				r.Put("/admin/courses/{id}", courseupdate.New(logger, catalogService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
