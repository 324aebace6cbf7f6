package tasks

import (
	"time"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Owner       string          `json:"owner"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	Status      domain.Status   `json:"status"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	ProjectID   string          `json:"project_id,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	AssignedTo  string          `json:"assigned_to,omitempty"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
}

// UpdateTaskRequest is the request for a partial task update. Nil fields
// are left untouched; ClearDueDate removes an existing due date.
type UpdateTaskRequest struct {
	Owner        string           `json:"owner"`
	ID           string           `json:"id"`
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Priority     *domain.Priority `json:"priority,omitempty"`
	Status       *domain.Status   `json:"status,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	ClearDueDate bool             `json:"clear_due_date,omitempty"`
	ProjectID    *string          `json:"project_id,omitempty"`
	Tags         *[]string        `json:"tags,omitempty"`
	AssignedTo   *string          `json:"assigned_to,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// ToggleTaskRequest is the request for flipping a task's completion state.
type ToggleTaskRequest struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
}

// ListTasksRequest is the request for a filtered task listing.
type ListTasksRequest struct {
	Owner  string        `json:"owner"`
	Filter domain.Filter `json:"filter"`
}

// ListTasksResponse is the response containing a filtered task listing.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// CategorizedRequest is the request for the due-date bucket view.
type CategorizedRequest struct {
	Owner string `json:"owner"`
}

// CategorizedResponse carries the four due-date buckets.
type CategorizedResponse struct {
	Categorized domain.Categorized `json:"categorized"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// StatsRequest is the request for the quick-stats counters.
type StatsRequest struct {
	Owner string `json:"owner"`
}

// StatsResponse carries the quick-stats counters.
type StatsResponse struct {
	Stats       domain.Stats `json:"stats"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// DashboardRequest is the request for the dashboard view.
type DashboardRequest struct {
	Owner string `json:"owner"`
}

// DashboardResponse carries the due-date buckets and quick-stats
// counters rendered on the main page.
type DashboardResponse struct {
	Categorized domain.Categorized `json:"categorized"`
	Stats       domain.Stats       `json:"stats"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// CreateProjectRequest is the request for creating a project.
type CreateProjectRequest struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListProjectsRequest is the request for listing an owner's projects.
type ListProjectsRequest struct {
	Owner string `json:"owner"`
}

// ListProjectsResponse is the response containing an owner's projects.
type ListProjectsResponse struct {
	Projects []domain.Project `json:"projects"`
	Total    int              `json:"total"`
}

// DeleteProjectRequest is the request for deleting a project.
type DeleteProjectRequest struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
}

// DeleteProjectResponse is the response after deleting a project.
type DeleteProjectResponse struct {
	Deleted       bool   `json:"deleted"`
	ID            string `json:"id"`
	TasksDetached int64  `json:"tasks_detached"`
}
