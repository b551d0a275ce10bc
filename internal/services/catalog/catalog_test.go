package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-portal/internal/models"
	"github.com/magabrotheeeer/course-portal/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	args := m.Called(ctx, course)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateCourse(ctx context.Context, course models.Course, id int) (int, error) {
	args := m.Called(ctx, course, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}
func (m *RepoMock) ListActiveCourses(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}
func (m *RepoMock) ListAllCourses(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListActive_CacheMiss(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	courses := []*models.Course{{ID: 1, Title: "Основы Go", IsActive: true}}
	cache.On("Get", "courses:active", mock.Anything).Return(false, nil)
	repo.On("ListActiveCourses", mock.Anything).Return(courses, nil)
	cache.On("Set", "courses:active", courses, 5*time.Minute).Return(nil)

	svc := NewCatalogService(repo, cache, discardLogger())
	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, courses, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreate_InvalidatesCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	repo.On("CreateCourse", mock.Anything, mock.MatchedBy(func(c models.Course) bool {
		return c.Title == "Основы Go" && c.IsActive
	})).Return(7, nil)
	cache.On("Invalidate", "courses:active").Return(nil)

	svc := NewCatalogService(repo, cache, discardLogger())
	id, err := svc.Create(context.Background(), models.DummyCourse{Title: "Основы Go"})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	cache.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	repo.On("UpdateCourse", mock.Anything, mock.Anything, 404).Return(0, nil)

	svc := NewCatalogService(repo, cache, discardLogger())
	err := svc.Update(context.Background(), models.DummyCourse{Title: "Основы Go"}, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestUpdate_Deactivation(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	inactive := false
	repo.On("UpdateCourse", mock.Anything, mock.MatchedBy(func(c models.Course) bool {
		return !c.IsActive
	}), 1).Return(1, nil)
	cache.On("Invalidate", "courses:active").Return(nil)

	svc := NewCatalogService(repo, cache, discardLogger())
	err := svc.Update(context.Background(), models.DummyCourse{Title: "Основы Go", IsActive: &inactive}, 1)
	require.NoError(t, err)
	cache.AssertExpectations(t)
}
