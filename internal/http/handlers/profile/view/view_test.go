package view

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-portal/internal/http/response"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

type AuthMock struct {
	mock.Mock
}

func (m *AuthMock) GetProfile(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type EnrollmentsMock struct {
	mock.Mock
}

func (m *EnrollmentsMock) ListOwn(ctx context.Context, username string, limit, offset int) ([]*models.Application, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestViewHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthMock)
	enrollmentsMock := new(EnrollmentsMock)
	handler := New(newNoopLogger(), authMock, enrollmentsMock)

	authMock.On("GetProfile", mock.Anything, "ivanov_ivan").
		Return(&models.User{
			Username: "ivanov_ivan",
			FullName: "Иванов Иван",
			Phone:    "8(912)345-67-89",
			Email:    "ivanov@example.com",
		}, nil)
	enrollmentsMock.On("ListOwn", mock.Anything, "ivanov_ivan", 10, 0).
		Return([]*models.Application{
			{ID: 2, Username: "ivanov_ivan", CourseTitle: "Основы Go"},
			{ID: 1, Username: "ivanov_ivan", CourseTitle: "Веб-разработка"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, "ivanov_ivan"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)

	data := resp.Data.(map[string]any)
	profile := data["profile"].(map[string]any)
	assert.Equal(t, "ivanov_ivan", profile["username"])
	// хэш пароля не должен попадать в ответ
	_, hasHash := profile["password_hash"]
	assert.False(t, hasHash)
	assert.Equal(t, float64(2), data["applications_count"])
}

func TestViewHandler_Unauthorized(t *testing.T) {
	handler := New(newNoopLogger(), new(AuthMock), new(EnrollmentsMock))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
