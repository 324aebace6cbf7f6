package api

import (
	"log"
	"strings"

	taskdomain "github.com/BrunoReiis/nexustaskmanager/domain/task"
	"github.com/BrunoReiis/nexustaskmanager/modules/tasks"
	"github.com/gofiber/fiber/v2"
)

// CreateTask handles creating a task for the authenticated user.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := tasks.CreateTaskRequest{
		Owner:       claims.UserID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    taskdomain.Priority(body.Priority),
		Status:      taskdomain.Status(body.Status),
		DueDate:     body.DueDate,
		ProjectID:   body.ProjectID,
		Tags:        body.Tags,
		AssignedTo:  body.AssignedTo,
	}
	var task taskdomain.Task

	if err := h.callTasks(c, "task-create", &req, &task); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTask handles fetching one of the authenticated user's tasks.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.GetTaskRequest{
		Owner: claims.UserID,
		ID:    c.Params("id"),
	}
	var task taskdomain.Task

	if err := h.callTasks(c, "task-get", &req, &task); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

// UpdateTask handles a partial update of one of the user's tasks.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := tasks.UpdateTaskRequest{
		Owner:        claims.UserID,
		ID:           c.Params("id"),
		Title:        body.Title,
		Description:  body.Description,
		DueDate:      body.DueDate,
		ClearDueDate: body.ClearDueDate,
		ProjectID:    body.ProjectID,
		Tags:         body.Tags,
		AssignedTo:   body.AssignedTo,
	}
	if body.Priority != nil {
		p := taskdomain.Priority(*body.Priority)
		req.Priority = &p
	}
	if body.Status != nil {
		s := taskdomain.Status(*body.Status)
		req.Status = &s
	}
	var task taskdomain.Task

	if err := h.callTasks(c, "task-update", &req, &task); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

// DeleteTask handles deleting one of the user's tasks.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.DeleteTaskRequest{
		Owner: claims.UserID,
		ID:    c.Params("id"),
	}
	var resp tasks.DeleteTaskResponse

	if err := h.callTasks(c, "task-delete", &req, &resp); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ToggleTask flips the completion state of one of the user's tasks.
func (h *Handlers) ToggleTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.ToggleTaskRequest{
		Owner: claims.UserID,
		ID:    c.Params("id"),
	}
	var task taskdomain.Task

	if err := h.callTasks(c, "task-toggle", &req, &task); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

// ListTasks handles a filtered listing of the user's tasks. Filter
// fields arrive as query parameters; tags is comma-separated and all
// listed tags must be present.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	filter := taskdomain.Filter{
		ProjectID:  c.Query("project_id"),
		Priority:   taskdomain.Priority(c.Query("priority")),
		Status:     taskdomain.Status(c.Query("status")),
		Due:        taskdomain.DueBucket(c.Query("due")),
		AssignedTo: c.Query("assignee"),
	}
	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	req := tasks.ListTasksRequest{
		Owner:  claims.UserID,
		Filter: filter,
	}
	var resp tasks.ListTasksResponse

	if err := h.callTasks(c, "task-list", &req, &resp); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Categorized returns the user's due-date buckets alone.
func (h *Handlers) Categorized(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.CategorizedRequest{Owner: claims.UserID}
	var resp tasks.CategorizedResponse

	if err := h.callTasks(c, "task-categorized", &req, &resp); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// QuickStats returns the user's quick-stats counters alone.
func (h *Handlers) QuickStats(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.StatsRequest{Owner: claims.UserID}
	var resp tasks.StatsResponse

	if err := h.callTasks(c, "task-stats", &req, &resp); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Dashboard returns the user's due-date buckets and quick stats.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.DashboardRequest{Owner: claims.UserID}
	var resp tasks.DashboardResponse

	if err := h.callTasks(c, "dashboard", &req, &resp); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateProject handles creating a project for the authenticated user.
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var body CreateProjectBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := tasks.CreateProjectRequest{
		Owner: claims.UserID,
		Name:  body.Name,
		Color: body.Color,
	}
	var project taskdomain.Project

	if err := h.callTasks(c, "project-create", &req, &project); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// ListProjects handles listing the user's projects.
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.ListProjectsRequest{Owner: claims.UserID}
	var resp tasks.ListProjectsResponse

	if err := h.callTasks(c, "project-list", &req, &resp); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteProject handles deleting one of the user's projects. Tasks in
// the project are detached, not removed.
func (h *Handlers) DeleteProject(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	req := tasks.DeleteProjectRequest{
		Owner: claims.UserID,
		ID:    c.Params("id"),
	}
	var resp tasks.DeleteProjectResponse

	if err := h.callTasks(c, "project-delete", &req, &resp); err != nil {
		return h.handleTasksError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// handleTasksError maps tasks service errors to HTTP responses. Errors
// cross the service boundary as messages, so matching is by substring.
func (h *Handlers) handleTasksError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case strings.Contains(errStr, "project not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Project not found",
		})
	case strings.Contains(errStr, "is required"),
		strings.Contains(errStr, "cannot be empty"),
		strings.Contains(errStr, "invalid status"),
		strings.Contains(errStr, "invalid priority"),
		strings.Contains(errStr, "invalid due bucket"):
		return badRequest(c, trimServiceError(errStr))
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// trimServiceError strips transport wrapping from a service error
// message, keeping the last segment for the client.
func trimServiceError(errStr string) string {
	if i := strings.LastIndex(errStr, ": "); i >= 0 {
		return errStr[i+2:]
	}
	return errStr
}
