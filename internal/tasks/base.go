package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"quizmaster_app/internal/models"
)

// DefaultMaxAttempts is used when a task is scheduled without an explicit limit
const DefaultMaxAttempts = 3

// BuildScheduledTask builds an active ScheduledTask. args may be any value
// that marshals to a JSON object.
func BuildScheduledTask(name string, args interface{}, due time.Time, recurrence string, maxAttempts int) (*models.ScheduledTask, error) {
	var mapArgs models.TaskArgs
	if args != nil {
		argsBytes, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal args: %w", err)
		}
		if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
			return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}

	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	task := &models.ScheduledTask{
		Name:        name,
		Arguments:   mapArgs,
		Due:         due,
		Status:      models.TaskStatusActive,
		MaxAttempts: maxAttempts,
	}
	if recurrence != "" {
		task.Recurrence = &recurrence
	}
	return task, nil
}
