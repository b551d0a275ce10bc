package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-portal/internal/config"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.Course{ID: 1, Title: "Основы Go", IsActive: true}
	err := cache.Set("course:1", expected, time.Minute)
	require.NoError(t, err)

	var actual models.Course
	found, err := cache.Get("course:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGet_Missing(t *testing.T) {
	cache := setupTestCache(t)

	var actual models.Course
	found, err := cache.Get("course:404", &actual)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("courses:active", []models.Course{{ID: 1}}, time.Minute))
	require.NoError(t, cache.Invalidate("courses:active"))

	var actual []models.Course
	found, err := cache.Get("courses:active", &actual)
	require.NoError(t, err)
	assert.False(t, found)
}
