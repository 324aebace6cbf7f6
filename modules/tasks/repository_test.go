package tasks

import (
	"errors"
	"testing"
	"time"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}, &domain.Project{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// newTestTask builds a persisted-shape task for the given owner.
func newTestTask(owner, title string) *domain.Task {
	now := time.Now()
	return &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	task := newTestTask("u1", "Write release notes")
	task.Tags = []string{"docs", "release"}

	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID("u1", task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != task.Title {
		t.Errorf("expected title %q, got %q", task.Title, found.Title)
	}
	if len(found.Tags) != 2 || found.Tags[0] != "docs" {
		t.Errorf("tags did not round-trip: %v", found.Tags)
	}
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	task := newTestTask("u1", "Private task")
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.FindByID("u2", task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() with wrong owner error = %v, want ErrTaskNotFound", err)
	}

	if err := repo.Delete("u2", task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete() with wrong owner error = %v, want ErrTaskNotFound", err)
	}

	tasks, err := repo.FindAllByOwner("u2")
	if err != nil {
		t.Fatalf("FindAllByOwner() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty snapshot for other owner, got %d tasks", len(tasks))
	}
}

func TestTaskRepository_FindAllByOwnerOrder(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	base := time.Now().Add(-time.Hour)
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		task := newTestTask("u1", title)
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	tasks, err := repo.FindAllByOwner("u1")
	if err != nil {
		t.Fatalf("FindAllByOwner() error = %v", err)
	}
	if len(tasks) != len(titles) {
		t.Fatalf("expected %d tasks, got %d", len(titles), len(tasks))
	}
	for i, title := range titles {
		if tasks[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, tasks[i].Title, title)
		}
	}
}

func TestTaskRepository_SaveClearsOptionalFields(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	due := time.Now().AddDate(0, 0, 1)
	task := newTestTask("u1", "Has due date")
	task.DueDate = &due
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	task.DueDate = nil
	if err := repo.Save(task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID("u1", task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.DueDate != nil {
		t.Errorf("cleared due date survived Save: %v", found.DueDate)
	}
}

func TestTaskRepository_DetachProject(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	projectID := uuid.New().String()
	for _, tc := range []struct {
		owner   string
		project string
	}{
		{"u1", projectID},
		{"u1", projectID},
		{"u1", ""},
		{"u2", projectID},
	} {
		task := newTestTask(tc.owner, "t")
		task.ProjectID = tc.project
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	detached, err := repo.DetachProject("u1", projectID)
	if err != nil {
		t.Fatalf("DetachProject() error = %v", err)
	}
	if detached != 2 {
		t.Errorf("detached = %d, want 2", detached)
	}

	// The other owner's reference is untouched.
	others, err := repo.FindAllByOwner("u2")
	if err != nil {
		t.Fatalf("FindAllByOwner() error = %v", err)
	}
	if len(others) != 1 || others[0].ProjectID != projectID {
		t.Errorf("other owner's project reference changed: %+v", others)
	}
}

func TestProjectRepository_CRUD(t *testing.T) {
	repo := NewProjectRepository(setupTestDB(t))

	now := time.Now()
	project := &domain.Project{
		ID:        uuid.New().String(),
		Name:      "Work",
		Color:     "#3b82f6",
		Owner:     "u1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Create(project); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID("u1", project.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "Work" || found.Color != "#3b82f6" {
		t.Errorf("project did not round-trip: %+v", found)
	}

	if _, err := repo.FindByID("u2", project.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("FindByID() with wrong owner error = %v, want ErrProjectNotFound", err)
	}

	if err := repo.Delete("u1", project.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete("u1", project.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("second Delete() error = %v, want ErrProjectNotFound", err)
	}
}
