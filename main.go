package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/BrunoReiis/nexustaskmanager/modules/api"
	"github.com/BrunoReiis/nexustaskmanager/modules/auth"
	"github.com/BrunoReiis/nexustaskmanager/modules/cache"
	"github.com/BrunoReiis/nexustaskmanager/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== NexusTask ===")

	cacheEnabled := getEnv("CACHE_ENABLED", "true") == "true"
	cacheConfig := loadCacheConfig()

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	var cacheModule *cache.Module
	if cacheEnabled {
		cacheModule = cache.NewModule(cacheConfig)
		app.Register(cacheModule)
	}
	tasksModule := tasks.NewModule()
	app.Register(auth.NewModule())
	app.Register(tasksModule)
	app.Register(api.NewModule()) // Depends on auth and tasks modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wire up dependencies after start
	// Dashboard responses are cached per owner in Redis
	if cacheModule != nil {
		tasksModule.SetCache(cacheModule.GetCache())
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// loadCacheConfig loads cache settings from environment variables.
func loadCacheConfig() cache.Config {
	config := cache.DefaultConfig()

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.RedisAddr = addr
	}
	if prefix := os.Getenv("CACHE_PREFIX"); prefix != "" {
		config.Prefix = prefix
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			config.TTL = parsed
		} else {
			log.Printf("Warning: invalid duration for CACHE_TTL: %s, using default: %s", ttl, config.TTL)
		}
	}

	return config
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register               - Register a new user")
	log.Println("  POST   /api/v1/auth/login                  - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh                - Refresh access token")
	log.Println("  POST   /api/v1/auth/password-reset/request - Request a reset email")
	log.Println("  POST   /api/v1/auth/password-reset/confirm - Redeem a reset token")
	log.Println("  GET    /health                             - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile                     - Get current user profile")
	log.Println("  PUT    /api/v1/profile                     - Update display name and photo")
	log.Println("  GET    /api/v1/dashboard                   - Due-date buckets and quick stats")
	log.Println("  GET    /api/v1/dashboard/categorized       - Due-date buckets only")
	log.Println("  GET    /api/v1/dashboard/stats             - Quick stats only")
	log.Println("  GET    /api/v1/tasks                       - List tasks (filterable)")
	log.Println("  POST   /api/v1/tasks                       - Create a task")
	log.Println("  GET    /api/v1/tasks/:id                   - Get a task")
	log.Println("  PUT    /api/v1/tasks/:id                   - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id                   - Delete a task")
	log.Println("  POST   /api/v1/tasks/:id/toggle            - Toggle task completion")
	log.Println("  GET    /api/v1/projects                    - List projects")
	log.Println("  POST   /api/v1/projects                    - Create a project")
	log.Println("  DELETE /api/v1/projects/:id                - Delete a project (detaches tasks)")
	log.Println("")
	log.Println("  Task list filters: project_id, priority, status, due, tags, assignee")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
