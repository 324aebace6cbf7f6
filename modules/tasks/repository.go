package tasks

import (
	"errors"
	"fmt"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/task"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound is returned when a task does not exist for the owner.
	ErrTaskNotFound = errors.New("task not found")
	// ErrProjectNotFound is returned when a project does not exist for the owner.
	ErrProjectNotFound = errors.New("project not found")
)

// TaskRepository handles task persistence using GORM. Every query is
// owner-scoped: tasks belonging to other owners are invisible.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create saves a new task.
func (r *TaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by ID for the given owner.
func (r *TaskRepository) FindByID(owner, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.First(&task, "id = ? AND owner = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindAllByOwner retrieves the owner's full task snapshot, oldest first.
// The engine's filter and bucketing functions preserve this order.
func (r *TaskRepository) FindAllByOwner(owner string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.Where("owner = ?", owner).Order("created_at ASC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Save writes back a full task record, including cleared optional fields.
func (r *TaskRepository) Save(task *domain.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Delete removes a task by ID for the given owner.
func (r *TaskRepository) Delete(owner, id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND owner = ?", id, owner)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountByOwner returns how many tasks the owner has.
func (r *TaskRepository) CountByOwner(owner string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Task{}).Where("owner = ?", owner).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// DetachProject clears the project reference on every task of the owner
// pointing at the given project. Returns how many tasks were detached.
func (r *TaskRepository) DetachProject(owner, projectID string) (int64, error) {
	result := r.db.Model(&domain.Task{}).
		Where("owner = ? AND project_id = ?", owner, projectID).
		Update("project_id", "")
	if result.Error != nil {
		return 0, fmt.Errorf("failed to detach project: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ProjectRepository handles project persistence using GORM.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create saves a new project.
func (r *ProjectRepository) Create(project *domain.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// FindByID retrieves a project by ID for the given owner.
func (r *ProjectRepository) FindByID(owner, id string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.First(&project, "id = ? AND owner = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

// FindAllByOwner retrieves all projects of the owner, oldest first.
func (r *ProjectRepository) FindAllByOwner(owner string) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.Where("owner = ?", owner).Order("created_at ASC").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Delete removes a project by ID for the given owner.
func (r *ProjectRepository) Delete(owner, id string) error {
	result := r.db.Delete(&domain.Project{}, "id = ? AND owner = ?", id, owner)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
