package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduledTask_NextDue(t *testing.T) {
	due := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)
	daily := "FREQ=DAILY"
	twice := "FREQ=DAILY;COUNT=2"
	broken := "NOT-A-RULE"

	tests := []struct {
		name       string
		recurrence *string
		now        time.Time
		expected   time.Time
	}{
		{name: "one-off", recurrence: nil, now: due, expected: time.Time{}},
		{name: "daily after due", recurrence: &daily, now: due, expected: due.Add(24 * time.Hour)},
		{name: "daily skips missed days", recurrence: &daily, now: due.Add(72*time.Hour + time.Minute), expected: due.Add(96 * time.Hour)},
		{name: "exhausted rule", recurrence: &twice, now: due.Add(48 * time.Hour), expected: time.Time{}},
		{name: "unparsable rule", recurrence: &broken, now: due, expected: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := ScheduledTask{Due: due, Recurrence: tt.recurrence}
			assert.True(t, tt.expected.Equal(task.NextDue(tt.now)), "got %s", task.NextDue(tt.now))
		})
	}
}

func TestQuestion_Format(t *testing.T) {
	id := uint(4)
	q := Question{ID: 9, Question: "Q", Answer: "A", Difficulty: 3, CategoryID: &id}
	assert.Equal(t, FormattedQuestion{ID: 9, Question: "Q", Answer: "A", Category: "4", Difficulty: 3}, q.Format())

	q.CategoryID = nil
	assert.Equal(t, "", q.Format().Category)
	assert.Nil(t, q.CategoryName())

	q.Category = &Category{ID: 4, Type: "Art"}
	assert.Equal(t, "Art", *q.CategoryName())
}
