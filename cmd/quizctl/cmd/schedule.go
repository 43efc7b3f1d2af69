package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"quizmaster_app/internal/tasks"
)

const dueLayout = "2006-01-02 15:04"

var scheduleCmd = &cobra.Command{
	Use:   "schedule <task>",
	Short: "Schedule a background task for the worker",
	Long: `Create a scheduled task that the worker runs once it is due.

Known tasks:
  seed_sample_data         insert the sample data when the database is empty
  refresh_category_cache   rebuild the cached category list

Examples:
  quizctl schedule refresh_category_cache --recurrence "FREQ=HOURLY"
  quizctl schedule seed_sample_data --due "2026-01-02 08:00"`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().String("args", "", "JSON object passed to the task")
	scheduleCmd.Flags().String("due", "", "due time, RFC3339 or '2006-01-02 15:04' local time (default now)")
	scheduleCmd.Flags().String("recurrence", "", "RFC 5545 RRULE, e.g. FREQ=DAILY")
	scheduleCmd.Flags().Int("max-attempts", tasks.DefaultMaxAttempts, "attempts before the task is marked failed")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	name := args[0]
	argsJSON, _ := cmd.Flags().GetString("args")
	dueStr, _ := cmd.Flags().GetString("due")
	recurrence, _ := cmd.Flags().GetString("recurrence")
	maxAttempts, _ := cmd.Flags().GetInt("max-attempts")

	if !knownTask(name) {
		return fmt.Errorf("unknown task %q", name)
	}

	var taskArgs map[string]interface{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &taskArgs); err != nil {
			return fmt.Errorf("invalid --args JSON: %w", err)
		}
	}

	due, err := parseDue(dueStr, time.Now())
	if err != nil {
		return err
	}

	task, err := tasks.BuildScheduledTask(name, taskArgs, due, recurrence, maxAttempts)
	if err != nil {
		return err
	}
	if task.Recurring() && task.NextDue(due.Add(-time.Second)).IsZero() {
		return fmt.Errorf("invalid recurrence rule %q", recurrence)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if err := db.WithContext(cmd.Context()).Create(task).Error; err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created task ID: %d\n", task.ID)
	fmt.Fprintf(out, "Task: %s\nDue: %s\n", task.Name, task.Due.Format(time.RFC3339))
	if task.Recurring() {
		fmt.Fprintf(out, "Recurrence: %s\n", *task.Recurrence)
	}
	return nil
}

func knownTask(name string) bool {
	switch name {
	case tasks.TaskSeedSampleData, tasks.TaskRefreshCategoryCache:
		return true
	}
	return false
}

// parseDue accepts RFC3339 or dueLayout in local time. Empty means now.
func parseDue(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dueLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, use RFC3339 or %q", s, dueLayout)
	}
	return t, nil
}
