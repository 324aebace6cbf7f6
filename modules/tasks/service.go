package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/task"
	"github.com/BrunoReiis/nexustaskmanager/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// handleCreateTask handles the tasks.create service request.
func (m *TasksModule) handleCreateTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	if req.Owner == "" {
		return domain.Task{}, fmt.Errorf("owner is required")
	}
	if req.Title == "" {
		return domain.Task{}, fmt.Errorf("title is required")
	}

	// New tasks default to pending / medium priority.
	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !status.Valid() {
		return domain.Task{}, fmt.Errorf("invalid status %q", status)
	}
	if !priority.Valid() {
		return domain.Task{}, fmt.Errorf("invalid priority %q", priority)
	}

	now := time.Now()
	task := domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		Tags:        req.Tags,
		AssignedTo:  req.AssignedTo,
		Owner:       req.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.StatusCompleted {
		task.CompletedAt = &now
	}

	if err := m.repo.Create(&task); err != nil {
		return domain.Task{}, err
	}

	m.invalidateOwner(ctx, req.Owner)
	return task, nil
}

// handleGetTask handles the tasks.get service request.
func (m *TasksModule) handleGetTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Task, error) {
	if req.ID == "" {
		return domain.Task{}, fmt.Errorf("id is required")
	}

	task, err := m.repo.FindByID(req.Owner, req.ID)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

// handleUpdateTask handles the tasks.update service request. Only the
// fields present in the request change; the completion invariant
// (CompletedAt set iff completed) is re-established after a status change.
func (m *TasksModule) handleUpdateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	if req.ID == "" {
		return domain.Task{}, fmt.Errorf("id is required")
	}

	task, err := m.repo.FindByID(req.Owner, req.ID)
	if err != nil {
		return domain.Task{}, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return domain.Task{}, fmt.Errorf("title cannot be empty")
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return domain.Task{}, fmt.Errorf("invalid priority %q", *req.Priority)
		}
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.Task{}, fmt.Errorf("invalid status %q", *req.Status)
		}
		task.Status = *req.Status
		if task.Status == domain.StatusCompleted {
			if task.CompletedAt == nil {
				now := time.Now()
				task.CompletedAt = &now
			}
		} else {
			task.CompletedAt = nil
		}
	}
	if req.ClearDueDate {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.AssignedTo != nil {
		task.AssignedTo = *req.AssignedTo
	}
	task.UpdatedAt = time.Now()

	if err := m.repo.Save(task); err != nil {
		return domain.Task{}, err
	}

	m.invalidateOwner(ctx, req.Owner)
	return *task, nil
}

// handleDeleteTask handles the tasks.delete service request.
func (m *TasksModule) handleDeleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.ID == "" {
		return DeleteTaskResponse{}, fmt.Errorf("id is required")
	}

	if err := m.repo.Delete(req.Owner, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}

	m.invalidateOwner(ctx, req.Owner)
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// handleToggleTask handles the tasks.toggle service request. The engine's
// toggle produces a fresh value; the previous record is replaced, never
// mutated in place.
func (m *TasksModule) handleToggleTask(ctx context.Context, req ToggleTaskRequest, _ *mono.Msg) (domain.Task, error) {
	if req.ID == "" {
		return domain.Task{}, fmt.Errorf("id is required")
	}

	current, err := m.repo.FindByID(req.Owner, req.ID)
	if err != nil {
		return domain.Task{}, err
	}

	toggled := domain.ToggleCompletion(*current, time.Now())
	toggled.UpdatedAt = time.Now()

	if err := m.repo.Save(&toggled); err != nil {
		return domain.Task{}, err
	}

	m.invalidateOwner(ctx, req.Owner)
	return toggled, nil
}

// handleListTasks handles the tasks.list service request: the owner's
// snapshot run through the query engine against the request filter.
func (m *TasksModule) handleListTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.Owner == "" {
		return ListTasksResponse{}, fmt.Errorf("owner is required")
	}
	if err := validateFilter(req.Filter); err != nil {
		return ListTasksResponse{}, err
	}

	tasks, err := m.repo.FindAllByOwner(req.Owner)
	if err != nil {
		return ListTasksResponse{}, err
	}

	filtered := domain.FilterTasks(tasks, req.Filter, time.Now())
	return ListTasksResponse{
		Tasks: filtered,
		Total: len(filtered),
	}, nil
}

// handleCategorized handles the tasks.task-categorized service request:
// the owner's open tasks partitioned into due-date buckets.
func (m *TasksModule) handleCategorized(_ context.Context, req CategorizedRequest, _ *mono.Msg) (CategorizedResponse, error) {
	if req.Owner == "" {
		return CategorizedResponse{}, fmt.Errorf("owner is required")
	}

	tasks, err := m.repo.FindAllByOwner(req.Owner)
	if err != nil {
		return CategorizedResponse{}, err
	}

	now := time.Now()
	return CategorizedResponse{
		Categorized: domain.CategorizeByDueDate(tasks, now),
		GeneratedAt: now,
	}, nil
}

// handleStats handles the tasks.task-stats service request.
func (m *TasksModule) handleStats(_ context.Context, req StatsRequest, _ *mono.Msg) (StatsResponse, error) {
	if req.Owner == "" {
		return StatsResponse{}, fmt.Errorf("owner is required")
	}

	tasks, err := m.repo.FindAllByOwner(req.Owner)
	if err != nil {
		return StatsResponse{}, err
	}

	now := time.Now()
	return StatsResponse{
		Stats:       domain.ComputeStats(tasks, now),
		GeneratedAt: now,
	}, nil
}

// handleDashboard handles the tasks.dashboard service request. Responses
// are cached per owner with a short TTL; concurrent misses for the same
// owner collapse into a single recomputation.
func (m *TasksModule) handleDashboard(ctx context.Context, req DashboardRequest, _ *mono.Msg) (DashboardResponse, error) {
	if req.Owner == "" {
		return DashboardResponse{}, fmt.Errorf("owner is required")
	}

	cacheKey := dashboardCacheKey(req.Owner)
	if m.cache != nil {
		var cached DashboardResponse
		found, err := m.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			// Degrade to a direct read on cache failure.
			log.Printf("[tasks] Dashboard cache read failed: %v", err)
		} else if found {
			return cached, nil
		}
	}

	result, err, _ := m.flight.Do(cacheKey, func() (any, error) {
		tasks, err := m.repo.FindAllByOwner(req.Owner)
		if err != nil {
			return DashboardResponse{}, err
		}

		now := time.Now()
		resp := DashboardResponse{
			Categorized: domain.CategorizeByDueDate(tasks, now),
			Stats:       domain.ComputeStats(tasks, now),
			GeneratedAt: now,
		}

		if m.cache != nil {
			if err := m.cache.Set(ctx, cacheKey, resp); err != nil {
				log.Printf("[tasks] Dashboard cache write failed: %v", err)
			}
		}
		return resp, nil
	})
	if err != nil {
		return DashboardResponse{}, err
	}

	return result.(DashboardResponse), nil
}

// handleCreateProject handles the tasks.project-create service request.
func (m *TasksModule) handleCreateProject(ctx context.Context, req CreateProjectRequest, _ *mono.Msg) (domain.Project, error) {
	if req.Owner == "" {
		return domain.Project{}, fmt.Errorf("owner is required")
	}
	if req.Name == "" {
		return domain.Project{}, fmt.Errorf("name is required")
	}

	now := time.Now()
	project := domain.Project{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Color:     req.Color,
		Owner:     req.Owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.projects.Create(&project); err != nil {
		return domain.Project{}, err
	}

	m.invalidateOwner(ctx, req.Owner)
	return project, nil
}

// handleListProjects handles the tasks.project-list service request.
func (m *TasksModule) handleListProjects(_ context.Context, req ListProjectsRequest, _ *mono.Msg) (ListProjectsResponse, error) {
	if req.Owner == "" {
		return ListProjectsResponse{}, fmt.Errorf("owner is required")
	}

	projects, err := m.projects.FindAllByOwner(req.Owner)
	if err != nil {
		return ListProjectsResponse{}, err
	}

	return ListProjectsResponse{
		Projects: projects,
		Total:    len(projects),
	}, nil
}

// handleDeleteProject handles the tasks.project-delete service request.
// Tasks referencing the project are detached, not deleted: the project
// reference is weak.
func (m *TasksModule) handleDeleteProject(ctx context.Context, req DeleteProjectRequest, _ *mono.Msg) (DeleteProjectResponse, error) {
	if req.ID == "" {
		return DeleteProjectResponse{}, fmt.Errorf("id is required")
	}

	if err := m.projects.Delete(req.Owner, req.ID); err != nil {
		return DeleteProjectResponse{Deleted: false, ID: req.ID}, err
	}

	detached, err := m.repo.DetachProject(req.Owner, req.ID)
	if err != nil {
		return DeleteProjectResponse{Deleted: true, ID: req.ID}, err
	}

	m.invalidateOwner(ctx, req.Owner)
	return DeleteProjectResponse{
		Deleted:       true,
		ID:            req.ID,
		TasksDetached: detached,
	}, nil
}

// invalidateOwner drops the owner's cached dashboard after a write.
// Cache failures are logged, not propagated: the database remains the
// source of truth and entries expire by TTL anyway.
func (m *TasksModule) invalidateOwner(ctx context.Context, owner string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.InvalidateOwner(ctx, owner); err != nil {
		log.Printf("[tasks] Cache invalidation failed for owner %s: %v", owner, err)
	}
}

// dashboardCacheKey builds the cache key for an owner's dashboard.
func dashboardCacheKey(owner string) string {
	return cache.OwnerKey(owner, "dashboard")
}

// validateFilter rejects unknown enum values before they reach the engine.
func validateFilter(f domain.Filter) error {
	if f.Priority != "" && !f.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", f.Priority)
	}
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("invalid status %q", f.Status)
	}
	if f.Due != "" && !f.Due.Valid() {
		return fmt.Errorf("invalid due bucket %q", f.Due)
	}
	return nil
}
