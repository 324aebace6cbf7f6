package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/BrunoReiis/nexustaskmanager/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP gateway in front of the auth and tasks modules.
type APIModule struct {
	app            *fiber.App
	authContainer  mono.ServiceContainer
	tasksContainer mono.ServiceContainer
	authAdapter    auth.AuthPort
	listenAddr     string
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "3000"
	}
	return &APIModule{
		listenAddr: ":" + port,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "tasks"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "tasks":
		m.tasksContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.tasksContainer == nil {
		return fmt.Errorf("tasks dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	// Add middleware
	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	// Setup routes
	m.setupRoutes()

	// Start server in goroutine
	go func() {
		if err := m.app.Listen(m.listenAddr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.listenAddr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.listenAddr,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.tasksContainer, m.authAdapter)

	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// API v1 routes
	v1 := m.app.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)
	authRoutes.Post("/password-reset/request", handlers.RequestPasswordReset)
	authRoutes.Post("/password-reset/confirm", handlers.ConfirmPasswordReset)

	// Protected routes (require authentication)
	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))
	protected.Get("/profile", handlers.Profile)
	protected.Put("/profile", handlers.UpdateProfile)

	protected.Get("/dashboard", handlers.Dashboard)
	protected.Get("/dashboard/categorized", handlers.Categorized)
	protected.Get("/dashboard/stats", handlers.QuickStats)

	taskRoutes := protected.Group("/tasks")
	taskRoutes.Get("/", handlers.ListTasks)
	taskRoutes.Post("/", handlers.CreateTask)
	taskRoutes.Get("/:id", handlers.GetTask)
	taskRoutes.Put("/:id", handlers.UpdateTask)
	taskRoutes.Delete("/:id", handlers.DeleteTask)
	taskRoutes.Post("/:id/toggle", handlers.ToggleTask)

	projectRoutes := protected.Group("/projects")
	projectRoutes.Get("/", handlers.ListProjects)
	projectRoutes.Post("/", handlers.CreateProject)
	projectRoutes.Delete("/:id", handlers.DeleteProject)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
