package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListActive(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	longDescription := strings.Repeat("а", 150)
	serviceMock.On("ListActive", mock.Anything).Return([]*models.Course{
		{ID: 1, Title: "Основы Go", Description: "Короткое описание", IsActive: true},
		{ID: 2, Title: "Веб-разработка", Description: longDescription, IsActive: true},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["courses_count"])

	courses := data["courses"].([]any)
	first := courses[0].(map[string]any)
	assert.Equal(t, "Короткое описание", first["short_description"])

	second := courses[1].(map[string]any)
	shortDesc := second["short_description"].(string)
	// длинное описание усечено до 100 символов с многоточием
	assert.Equal(t, 103, len([]rune(shortDesc)))
	assert.True(t, strings.HasSuffix(shortDesc, "..."))
	assert.Equal(t, longDescription, second["description"])
}

func TestListHandler_ServiceError(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	serviceMock.On("ListActive", mock.Anything).Return(nil, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
