package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaster_app/internal/models"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer cache.Close()

	_, err = NewRedisCache(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	var out []string
	err := cache.Get(context.Background(), "missing", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGetOrSet_WithCache(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fn := func() (int, error) {
		calls++
		return 7, nil
	}

	v, err := GetOrSet(cache, ctx, "k", 0, fn)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.True(t, mr.Exists("k"))

	v, err = GetOrSet(cache, ctx, "k", 0, fn)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}

func TestGetOrSetWhen_SkipsRejectedResults(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	v, err := GetOrSetWhen(cache, ctx, "k", 0, func() ([]int, error) {
		return nil, nil
	}, nonEmpty[int])
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.False(t, mr.Exists("k"))

	v, err = GetOrSetWhen(cache, ctx, "k", 0, func() ([]int, error) {
		return []int{1}, nil
	}, nonEmpty[int])
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
	assert.True(t, mr.Exists("k"))
}

func TestCategories_EmptyListIsNotCached(t *testing.T) {
	cache, mr := newTestCache(t)
	svc := NewQuizService(newTestDB(t), cache)
	ctx := context.Background()

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.False(t, mr.Exists(categoriesCacheKey))

	_, err = svc.Seed(ctx)
	require.NoError(t, err)

	categories, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
	assert.True(t, mr.Exists(categoriesCacheKey))
}

func TestSeed_ClearsStaleCategoryCache(t *testing.T) {
	cache, mr := newTestCache(t)
	svc := NewQuizService(newTestDB(t), cache)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, categoriesCacheKey, []models.Category{}, categoriesCacheTTL))

	res, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Categories)
	assert.False(t, mr.Exists(categoriesCacheKey))

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
}

func TestRefreshCategoryCache_WithCache(t *testing.T) {
	cache, _ := newTestCache(t)
	db := newTestDB(t)
	svc := NewQuizService(db, cache)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 6)

	require.NoError(t, db.Create(&models.Category{Type: "Music"}).Error)

	categories, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6, "served from cache")

	n, err := svc.RefreshCategoryCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
