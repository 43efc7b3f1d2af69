package models

import (
	"time"

	"github.com/teambition/rrule-go"
)

// TaskStatus is the lifecycle state of a scheduled quiz job
type TaskStatus string

const (
	TaskStatusActive   TaskStatus = "active"
	TaskStatusDone     TaskStatus = "done"
	TaskStatusFailed   TaskStatus = "failed"
	TaskStatusDisabled TaskStatus = "disabled"
)

// TaskArgs are the JSON arguments handed to a task handler
type TaskArgs map[string]interface{}

// ScheduledTask is a background job the worker runs once Due has passed.
// Recurrence, when set, is an RFC 5545 RRULE string.
type ScheduledTask struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Arguments   TaskArgs   `gorm:"serializer:json" json:"arguments"`
	Due         time.Time  `gorm:"index:idx_scheduled_tasks_status_due,priority:2" json:"due"`
	Recurrence  *string    `gorm:"type:text" json:"recurrence"`
	Status      TaskStatus `gorm:"type:varchar(20);index:idx_scheduled_tasks_status_due,priority:1" json:"status"`
	MaxAttempts int        `gorm:"default:3" json:"max_attempts"`
	LastRun     *time.Time `json:"last_run"`
}

// Recurring reports whether the task has a recurrence rule
func (t ScheduledTask) Recurring() bool {
	return t.Recurrence != nil && *t.Recurrence != ""
}

// NextDue returns the first occurrence strictly after now. It returns the
// zero time when the task does not recur, the rule cannot be parsed, or the
// rule is exhausted.
func (t ScheduledTask) NextDue(now time.Time) time.Time {
	if !t.Recurring() {
		return time.Time{}
	}
	rule, err := rrule.StrToRRule(*t.Recurrence)
	if err != nil {
		return time.Time{}
	}
	rule.DTStart(t.Due)
	return rule.After(now, false)
}

// ScheduledTaskRun records one execution attempt
type ScheduledTaskRun struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	ScheduledTaskID uint      `gorm:"index" json:"scheduled_task_id"`

	Name      string    `gorm:"type:varchar(100)" json:"name"`
	RunAt     time.Time `json:"run_at"`
	RuntimeMs int64     `json:"runtime_ms"`
	Status    string    `gorm:"type:varchar(30)" json:"status"`
	Attempt   int       `json:"attempt"`
	Arguments TaskArgs  `gorm:"serializer:json" json:"arguments"`
	Result    TaskArgs  `gorm:"serializer:json" json:"result"`
}
