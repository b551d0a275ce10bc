// Package home реализует HTTP-обработчик главной страницы портала.
//
// Возвращает изображения слайдера из каталога медиафайлов, не больше
// четырёх. Если изображений нет, отдаются пути заглушек, чтобы слайдер
// на клиенте не оставался пустым.
package home

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
)

const maxSliderImages = 4

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Handler обрабатывает запросы главной страницы.
type Handler struct {
	log       *slog.Logger
	mediaRoot string
}

// New создает новый Handler с переданными логгером и каталогом медиафайлов.
func New(log *slog.Logger, mediaRoot string) *Handler {
	return &Handler{
		log:       log,
		mediaRoot: mediaRoot,
	}
}

// ServeHTTP godoc
// @Summary Главная страница
// @Description Возвращает изображения слайдера. Без изображений в каталоге отдаются заглушки.
// @Tags Home
// @Produce  json
// @Success 200 {object} map[string]any "Изображения слайдера"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	images := h.sliderImages(log)
	if len(images) == 0 {
		images = placeholders()
	}

	log.Info("home page served", slog.Int("slider_images", len(images)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"slider": images,
	}))
}

func (h *Handler) sliderImages(log *slog.Logger) []string {
	sliderDir := filepath.Join(h.mediaRoot, "slider")
	entries, err := os.ReadDir(sliderDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error("failed to read slider directory", sl.Err(err))
		}
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}
		images = append(images, "/media/slider/"+entry.Name())
	}
	sort.Strings(images)

	if len(images) > maxSliderImages {
		images = images[:maxSliderImages]
	}
	return images
}

func placeholders() []string {
	images := make([]string, 0, maxSliderImages)
	for i := 1; i <= maxSliderImages; i++ {
		images = append(images, fmt.Sprintf("/static/placeholder-%d.png", i))
	}
	return images
}
