package home

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func writeSliderFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "slider"), 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "slider", name), []byte("img"), 0o644))
	}
}

func sliderFromResponse(t *testing.T, rr *httptest.ResponseRecorder) []any {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	return resp.Data.(map[string]any)["slider"].([]any)
}

func TestHomeHandler_SliderImages(t *testing.T) {
	mediaRoot := t.TempDir()
	writeSliderFiles(t, mediaRoot, "a.jpg", "b.png", "notes.txt")

	handler := New(newNoopLogger(), mediaRoot)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	slider := sliderFromResponse(t, rr)
	assert.Len(t, slider, 2)
	assert.Equal(t, "/media/slider/a.jpg", slider[0])
	assert.Equal(t, "/media/slider/b.png", slider[1])
}

func TestHomeHandler_MaxFourImages(t *testing.T) {
	mediaRoot := t.TempDir()
	writeSliderFiles(t, mediaRoot, "1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg")

	handler := New(newNoopLogger(), mediaRoot)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	slider := sliderFromResponse(t, rr)
	assert.Len(t, slider, 4)
}

func TestHomeHandler_PlaceholdersWhenEmpty(t *testing.T) {
	handler := New(newNoopLogger(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	slider := sliderFromResponse(t, rr)
	assert.Len(t, slider, 4)
	assert.Equal(t, "/static/placeholder-1.png", slider[0])
}
