package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaster_app/internal/tasks"
)

func TestParseDue(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	got, err := parseDue("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = parseDue("2026-06-01T10:00:00Z", now)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)))

	got, err = parseDue("2026-06-01 10:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.Local), got)

	_, err = parseDue("tomorrow", now)
	assert.Error(t, err)
}

func TestKnownTask(t *testing.T) {
	assert.True(t, knownTask(tasks.TaskSeedSampleData))
	assert.True(t, knownTask(tasks.TaskRefreshCategoryCache))
	assert.False(t, knownTask("send_email"))
}
