package task

import (
	"time"
)

// Status represents the workflow state of a task.
type Status string

// Task status values.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority represents the urgency of a task.
type Priority string

// Task priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is a known priority value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task represents a unit of work owned by a user.
// ProjectID is a weak reference: it may point at a project that no longer
// exists, in which case display falls back to "no project".
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	Status      Status     `gorm:"size:20;not null;index" json:"status"`
	Priority    Priority   `gorm:"size:20;not null;index" json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ProjectID   string     `gorm:"size:36;index" json:"project_id,omitempty"`
	Tags        []string   `gorm:"serializer:json" json:"tags,omitempty"`
	AssignedTo  string     `gorm:"size:36" json:"assigned_to,omitempty"`
	Owner       string     `gorm:"size:36;not null;index" json:"owner"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Project represents a named, colored grouping that tasks optionally belong to.
type Project struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Color     string    `gorm:"size:7" json:"color"`
	Owner     string    `gorm:"size:36;not null;index" json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Project entity.
func (Project) TableName() string {
	return "projects"
}
