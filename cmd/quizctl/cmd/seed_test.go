package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaster_app/internal/config"
	"quizmaster_app/internal/services"
)

func testConfig(t *testing.T, redisURL string) *config.Config {
	t.Helper()

	return &config.Config{
		DatabaseURL: "sqlite:" + filepath.Join(t.TempDir(), "trivia.db"),
		RedisURL:    redisURL,
		DB:          config.DB{MaxOpenConns: 1},
	}
}

func TestSeed_ClearsCategoryCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, "redis://"+mr.Addr())
	ctx := context.Background()

	// A category list cached before the database had any rows
	require.NoError(t, mr.Set("quiz:categories", "[]"))

	var out, warn bytes.Buffer
	require.NoError(t, seed(ctx, cfg, &out, &warn))
	assert.Equal(t, "Inserted 6 categories and 6 questions.\n", out.String())
	assert.Empty(t, warn.String())
	assert.False(t, mr.Exists("quiz:categories"))

	out.Reset()
	require.NoError(t, seed(ctx, cfg, &out, &warn))
	assert.Equal(t, "Categories already exist, nothing to seed.\n", out.String())
}

func TestSeed_WithoutRedis(t *testing.T) {
	cfg := testConfig(t, "")

	var out, warn bytes.Buffer
	require.NoError(t, seed(context.Background(), cfg, &out, &warn))
	assert.Equal(t, "Inserted 6 categories and 6 questions.\n", out.String())
	assert.Empty(t, warn.String())
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	var warn bytes.Buffer
	assert.Nil(t, openCache(ctx, &config.Config{}, &warn))
	assert.Empty(t, warn.String())

	mr := miniredis.RunT(t)
	cache := openCache(ctx, &config.Config{RedisURL: "redis://" + mr.Addr()}, &warn)
	require.NotNil(t, cache)
	assert.IsType(t, &services.RedisCache{}, cache)
	_ = cache.Close()
	assert.Empty(t, warn.String())

	mr.Close()
	assert.Nil(t, openCache(ctx, &config.Config{RedisURL: "redis://" + mr.Addr()}, &warn))
	assert.Contains(t, warn.String(), "redis unavailable")
}
