package tasks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"quizmaster_app/internal/models"
)

const (
	runStatusSuccess         = "success"
	runStatusFailure         = "failure"
	runStatusHandlerNotFound = "handler_not_found"
)

// Runner executes due scheduled tasks
type Runner struct {
	db       *gorm.DB
	registry *Registry
	log      *zap.Logger
	now      func() time.Time
}

// NewRunner creates a Runner
func NewRunner(db *gorm.DB, registry *Registry, log *zap.Logger) *Runner {
	return &Runner{db: db, registry: registry, log: log, now: time.Now}
}

// RunDue runs every active task whose due time has passed and returns how
// many were processed. It stops early when ctx is cancelled.
func (r *Runner) RunDue(ctx context.Context) (int, error) {
	var pending []models.ScheduledTask
	err := r.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.TaskStatusActive, r.now()).
		Order("due").
		Find(&pending).Error
	if err != nil {
		return 0, fmt.Errorf("fetch pending tasks: %w", err)
	}

	processed := 0
	for _, task := range pending {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if err := r.run(ctx, task); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

// run executes task with up to MaxAttempts attempts, records every attempt
// and moves the task to its next state
func (r *Runner) run(ctx context.Context, task models.ScheduledTask) error {
	log := r.log.With(zap.String("task", task.Name), zap.Uint("task_id", task.ID))
	db := r.db.WithContext(ctx)

	handler, ok := r.registry.Get(task.Name)
	if !ok {
		log.Warn("no handler registered, marking task failed")
		now := r.now()
		if err := db.Create(&models.ScheduledTaskRun{
			ScheduledTaskID: task.ID,
			Name:            task.Name,
			RunAt:           now,
			Status:          runStatusHandlerNotFound,
			Attempt:         1,
			Arguments:       task.Arguments,
			Result:          models.TaskArgs{"error": "handler not found"},
		}).Error; err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		return r.update(ctx, task, map[string]interface{}{"status": models.TaskStatusFailed, "last_run": now})
	}

	attempts := task.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var (
		startedAt time.Time
		lastErr   error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		startedAt = r.now()
		result, err := handler(ctx, task.Arguments)
		run := models.ScheduledTaskRun{
			ScheduledTaskID: task.ID,
			Name:            task.Name,
			RunAt:           startedAt,
			RuntimeMs:       r.now().Sub(startedAt).Milliseconds(),
			Status:          runStatusSuccess,
			Attempt:         attempt,
			Arguments:       task.Arguments,
			Result:          result,
		}
		if err != nil {
			run.Status = runStatusFailure
			run.Result = models.TaskArgs{"error": err.Error()}
		}
		if createErr := db.Create(&run).Error; createErr != nil {
			return fmt.Errorf("record run: %w", createErr)
		}

		lastErr = err
		if err == nil {
			break
		}
		log.Warn("task attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}

	updates := map[string]interface{}{"last_run": startedAt}
	switch {
	case lastErr != nil:
		updates["status"] = models.TaskStatusFailed
		log.Error("task failed", zap.Error(lastErr))
	case task.Recurring():
		next := task.NextDue(r.now())
		if next.IsZero() {
			updates["status"] = models.TaskStatusDone
		} else {
			updates["due"] = next
		}
		log.Info("recurring task completed", zap.Time("next_due", next))
	default:
		updates["status"] = models.TaskStatusDone
		log.Info("task completed")
	}

	return r.update(ctx, task, updates)
}

func (r *Runner) update(ctx context.Context, task models.ScheduledTask, updates map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
		return fmt.Errorf("update task %d: %w", task.ID, err)
	}
	return nil
}
