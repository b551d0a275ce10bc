package status

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/models"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdateStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func doRequest(handler *Handler, id string, body any) *httptest.ResponseRecorder {
	var bodyBytes []byte
	switch v := body.(type) {
	case string:
		bodyBytes = []byte(v)
	default:
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(http.MethodPut, "/admin/applications/"+id+"/status", bytes.NewReader(bodyBytes))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestStatusHandler_AnyTransition(t *testing.T) {
	// порядок переходов не проверяется
	tests := []struct {
		name   string
		status string
	}{
		{name: "сразу completed", status: models.StatusCompleted},
		{name: "возврат в new", status: models.StatusNew},
		{name: "in_progress", status: models.StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			serviceMock.On("UpdateStatus", mock.Anything, 42, tt.status).Return(nil).Once()

			rr := doRequest(handler, "42", Request{Status: tt.status})

			assert.Equal(t, http.StatusOK, rr.Code)

			var resp response.Response
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "OK", resp.Status)
			data := resp.Data.(map[string]any)
			assert.Equal(t, "status of application #42 updated", data["message"])
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestStatusHandler_UnknownStatus(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	rr := doRequest(handler, "42", Request{Status: "cancelled"})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp response.Response
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "field Status must be one of: new in_progress completed")
	serviceMock.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatusHandler_NotFound(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	serviceMock.On("UpdateStatus", mock.Anything, 99, models.StatusCompleted).
		Return(repository.ErrNotFound).Once()

	rr := doRequest(handler, "99", Request{Status: models.StatusCompleted})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusHandler_BadID(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	rr := doRequest(handler, "abc", Request{Status: models.StatusNew})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
