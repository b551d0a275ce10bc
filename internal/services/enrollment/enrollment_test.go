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

type AppRepoMock struct {
	mock.Mock
}

func (m *AppRepoMock) CreateApplication(ctx context.Context, app models.Application) (int, error) {
	args := m.Called(ctx, app)
	return args.Int(0), args.Error(1)
}

func (m *AppRepoMock) GetApplication(ctx context.Context, id int) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *AppRepoMock) ListApplicationsByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Application, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *AppRepoMock) ListAllApplications(ctx context.Context, limit, offset int) ([]*models.Application, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *AppRepoMock) UpdateApplicationFeedback(ctx context.Context, id int, username, feedback string) (int, error) {
	args := m.Called(ctx, id, username, feedback)
	return args.Int(0), args.Error(1)
}

func (m *AppRepoMock) UpdateApplicationStatus(ctx context.Context, id int, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}

func (m *AppRepoMock) GetApplicationInfo(ctx context.Context, id int) (*models.ApplicationInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicationInfo), args.Error(1)
}

type CourseRepoMock struct {
	mock.Mock
}

func (m *CourseRepoMock) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) ApplicationCreated(info *models.ApplicationInfo) {
	m.Called(info)
}

func (m *NotifierMock) StatusChanged(info *models.ApplicationInfo) {
	m.Called(info)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(repo *AppRepoMock, courses *CourseRepoMock, cache *CacheMock, notifier *NotifierMock) *EnrollmentService {
	return NewEnrollmentService(repo, courses, cache, notifier, discardLogger())
}

func TestCreate_Success(t *testing.T) {
	repo := new(AppRepoMock)
	courses := new(CourseRepoMock)
	cache := new(CacheMock)
	notifier := new(NotifierMock)
	svc := newService(repo, courses, cache, notifier)

	req := models.DummyApplication{
		CourseID:         7,
		DesiredStartDate: "2026-09-15",
		PaymentMethod:    models.PaymentCash,
	}

	courses.On("GetCourse", mock.Anything, 7).
		Return(&models.Course{ID: 7, Title: "Веб-разработка", IsActive: true}, nil)
	repo.On("CreateApplication", mock.Anything, mock.MatchedBy(func(app models.Application) bool {
		return app.Username == "ivanov" &&
			app.CourseID == 7 &&
			app.DesiredStartDate.Format("2006-01-02") == "2026-09-15" &&
			app.PaymentMethod == models.PaymentCash
	})).Return(42, nil)
	repo.On("GetApplication", mock.Anything, 42).
		Return(&models.Application{ID: 42, Username: "ivanov", CourseID: 7, Status: models.StatusNew}, nil)
	cache.On("Set", "application:42", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetApplicationInfo", mock.Anything, 42).
		Return(&models.ApplicationInfo{ID: 42, Username: "ivanov", Email: "ivanov@example.com"}, nil)
	notifier.On("ApplicationCreated", mock.Anything).Return()

	id, err := svc.Create(context.Background(), "ivanov", req)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreate_CourseUnavailable(t *testing.T) {
	cases := []struct {
		name   string
		course *models.Course
		err    error
	}{
		{
			name:   "курс деактивирован",
			course: &models.Course{ID: 7, IsActive: false},
		},
		{
			name: "курс не найден",
			err:  repository.ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(AppRepoMock)
			courses := new(CourseRepoMock)
			cache := new(CacheMock)
			notifier := new(NotifierMock)
			svc := newService(repo, courses, cache, notifier)

			courses.On("GetCourse", mock.Anything, 7).Return(tc.course, tc.err)

			_, err := svc.Create(context.Background(), "ivanov", models.DummyApplication{
				CourseID:         7,
				DesiredStartDate: "2026-09-15",
				PaymentMethod:    models.PaymentPhone,
			})
			require.ErrorIs(t, err, ErrCourseNotAvailable)
			repo.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_InvalidDate(t *testing.T) {
	repo := new(AppRepoMock)
	courses := new(CourseRepoMock)
	svc := newService(repo, courses, new(CacheMock), new(NotifierMock))

	_, err := svc.Create(context.Background(), "ivanov", models.DummyApplication{
		CourseID:         7,
		DesiredStartDate: "15.09.2026",
		PaymentMethod:    models.PaymentCash,
	})
	require.Error(t, err)
	courses.AssertNotCalled(t, "GetCourse", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateAllowed(t *testing.T) {
	repo := new(AppRepoMock)
	courses := new(CourseRepoMock)
	cache := new(CacheMock)
	notifier := new(NotifierMock)
	svc := newService(repo, courses, cache, notifier)

	courses.On("GetCourse", mock.Anything, 7).
		Return(&models.Course{ID: 7, IsActive: true}, nil)
	repo.On("CreateApplication", mock.Anything, mock.Anything).Return(1, nil).Once()
	repo.On("CreateApplication", mock.Anything, mock.Anything).Return(2, nil).Once()
	repo.On("GetApplication", mock.Anything, mock.Anything).Return(&models.Application{}, nil)
	repo.On("GetApplicationInfo", mock.Anything, mock.Anything).Return(&models.ApplicationInfo{}, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notifier.On("ApplicationCreated", mock.Anything).Return()

	req := models.DummyApplication{CourseID: 7, DesiredStartDate: "2026-09-15", PaymentMethod: models.PaymentCash}

	first, err := svc.Create(context.Background(), "ivanov", req)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "ivanov", req)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRead_CacheHit(t *testing.T) {
	repo := new(AppRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, new(CourseRepoMock), cache, new(NotifierMock))

	cache.On("Get", "application:42", mock.Anything).Return(true, nil)

	_, err := svc.Read(context.Background(), 42)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetApplication", mock.Anything, mock.Anything)
}

func TestUpdateFeedback_OwnerOnly(t *testing.T) {
	repo := new(AppRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, new(CourseRepoMock), cache, new(NotifierMock))

	// чужая заявка: хранилище не нашло строку по паре (id, username)
	repo.On("UpdateApplicationFeedback", mock.Anything, 42, "petrov", "Отличный курс!").
		Return(0, nil)

	err := svc.UpdateFeedback(context.Background(), "petrov", 42, "Отличный курс!")
	require.ErrorIs(t, err, repository.ErrNotFound)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestUpdateFeedback_Success(t *testing.T) {
	repo := new(AppRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, new(CourseRepoMock), cache, new(NotifierMock))

	repo.On("UpdateApplicationFeedback", mock.Anything, 42, "ivanov", "Отличный курс!").
		Return(1, nil)
	cache.On("Invalidate", "application:42").Return(nil)

	err := svc.UpdateFeedback(context.Background(), "ivanov", 42, "Отличный курс!")
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestUpdateStatus_AnyTransition(t *testing.T) {
	// переходы не ограничены: completed -> new допустим так же,
	// как new -> completed с пропуском in_progress
	cases := []struct {
		name   string
		status string
	}{
		{name: "сразу completed", status: models.StatusCompleted},
		{name: "возврат в new", status: models.StatusNew},
		{name: "in_progress", status: models.StatusInProgress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(AppRepoMock)
			cache := new(CacheMock)
			notifier := new(NotifierMock)
			svc := newService(repo, new(CourseRepoMock), cache, notifier)

			repo.On("UpdateApplicationStatus", mock.Anything, 42, tc.status).Return(1, nil)
			cache.On("Invalidate", "application:42").Return(nil)
			repo.On("GetApplicationInfo", mock.Anything, 42).
				Return(&models.ApplicationInfo{ID: 42, Status: tc.status}, nil)
			notifier.On("StatusChanged", mock.Anything).Return()

			err := svc.UpdateStatus(context.Background(), 42, tc.status)
			require.NoError(t, err)
			notifier.AssertExpectations(t)
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := new(AppRepoMock)
	notifier := new(NotifierMock)
	svc := newService(repo, new(CourseRepoMock), new(CacheMock), notifier)

	repo.On("UpdateApplicationStatus", mock.Anything, 99, models.StatusCompleted).Return(0, nil)

	err := svc.UpdateStatus(context.Background(), 99, models.StatusCompleted)
	require.ErrorIs(t, err, repository.ErrNotFound)
	notifier.AssertNotCalled(t, "StatusChanged", mock.Anything)
}
