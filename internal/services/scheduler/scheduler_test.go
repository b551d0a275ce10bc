package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-portal/internal/models"
)

type FinderMock struct {
	mock.Mock
}

func (m *FinderMock) FindApplicationsStartingTomorrow(ctx context.Context) ([]*models.ApplicationInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ApplicationInfo), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Upcoming(info *models.ApplicationInfo) {
	m.Called(info)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessOnce_PublishesEachApplication(t *testing.T) {
	finder := new(FinderMock)
	publisher := new(PublisherMock)
	s := New(finder, publisher, discardLogger(), time.Minute)

	infos := []*models.ApplicationInfo{
		{ID: 1, Email: "ivanov@example.com"},
		{ID: 2, Email: "petrov@example.com"},
	}
	finder.On("FindApplicationsStartingTomorrow", mock.Anything).Return(infos, nil)
	publisher.On("Upcoming", infos[0]).Return().Once()
	publisher.On("Upcoming", infos[1]).Return().Once()

	err := s.ProcessOnce(context.Background())
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestProcessOnce_Empty(t *testing.T) {
	finder := new(FinderMock)
	publisher := new(PublisherMock)
	s := New(finder, publisher, discardLogger(), time.Minute)

	finder.On("FindApplicationsStartingTomorrow", mock.Anything).
		Return([]*models.ApplicationInfo{}, nil)

	err := s.ProcessOnce(context.Background())
	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Upcoming", mock.Anything)
}

func TestProcessOnce_FinderError(t *testing.T) {
	finder := new(FinderMock)
	publisher := new(PublisherMock)
	s := New(finder, publisher, discardLogger(), time.Minute)

	finder.On("FindApplicationsStartingTomorrow", mock.Anything).
		Return(nil, errors.New("connection refused"))

	err := s.ProcessOnce(context.Background())
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Upcoming", mock.Anything)
}
