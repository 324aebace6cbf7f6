package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/task"
	"github.com/BrunoReiis/nexustaskmanager/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TasksModule provides task and project services built around the
// due-date query engine.
type TasksModule struct {
	db       *gorm.DB
	repo     *TaskRepository
	projects *ProjectRepository
	cache    *cache.Cache
	flight   singleflight.Group
	dbPath   string
	seedDemo bool
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule.
func NewModule() *TasksModule {
	dbPath := os.Getenv("TASKS_DB_PATH")
	if dbPath == "" {
		dbPath = "nexustask_tasks.db"
	}
	return &TasksModule{
		dbPath:   dbPath,
		seedDemo: os.Getenv("TASKS_SEED_DEMO") == "true",
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// Start initializes the tasks module.
func (m *TasksModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}, &domain.Project{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.repo = NewTaskRepository(db)
	m.projects = NewProjectRepository(db)

	if m.seedDemo {
		if err := m.seedDemoData(); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	log.Printf("[tasks] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TasksModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tasks] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TasksModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
			"caching":  m.cache != nil,
		},
	}
}

// SetCache wires the dashboard cache into the module. Called after all
// modules have started; the module serves uncached until then.
func (m *TasksModule) SetCache(c *cache.Cache) {
	m.cache = c
	log.Println("[tasks] Dashboard cache enabled")
}

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"task-create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-create", json.Unmarshal, json.Marshal, m.handleCreateTask)
		}},
		{"task-get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-get", json.Unmarshal, json.Marshal, m.handleGetTask)
		}},
		{"task-update", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-update", json.Unmarshal, json.Marshal, m.handleUpdateTask)
		}},
		{"task-delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-delete", json.Unmarshal, json.Marshal, m.handleDeleteTask)
		}},
		{"task-toggle", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-toggle", json.Unmarshal, json.Marshal, m.handleToggleTask)
		}},
		{"task-list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-list", json.Unmarshal, json.Marshal, m.handleListTasks)
		}},
		{"task-categorized", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-categorized", json.Unmarshal, json.Marshal, m.handleCategorized)
		}},
		{"task-stats", func() error {
			return helper.RegisterTypedRequestReplyService(container, "task-stats", json.Unmarshal, json.Marshal, m.handleStats)
		}},
		{"dashboard", func() error {
			return helper.RegisterTypedRequestReplyService(container, "dashboard", json.Unmarshal, json.Marshal, m.handleDashboard)
		}},
		{"project-create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "project-create", json.Unmarshal, json.Marshal, m.handleCreateProject)
		}},
		{"project-list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "project-list", json.Unmarshal, json.Marshal, m.handleListProjects)
		}},
		{"project-delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "project-delete", json.Unmarshal, json.Marshal, m.handleDeleteProject)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[tasks] Registered services: task-create, task-get, task-update, task-delete, task-toggle, task-list, task-categorized, task-stats, dashboard, project-create, project-list, project-delete")
	return nil
}
