package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"lifedash/internal/dashboard"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// skipIfNoDocker skips the test if Docker is not available
func skipIfNoDocker(t *testing.T) {
	// Check if we can run Docker commands
	if os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true" {
		t.Skip("Skipping Docker-based tests in CI environment")
	}
}

// setupMongoTestContainer sets up a MongoDB test container and returns the storage instance and cleanup function
func setupMongoTestContainer(t *testing.T) (*MongoStorage, func()) {
	skipIfNoDocker(t)

	ctx := context.Background()

	mongoContainer, err := mongodb.RunContainer(ctx)
	if err != nil {
		t.Skipf("Failed to start MongoDB container (Docker may not be available): %v", err)
	}

	connectionString, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		mongoContainer.Terminate(ctx)
		t.Skipf("Failed to get MongoDB connection string: %v", err)
	}

	mongoStorage, err := NewMongoStorage(connectionString, "test_lifedash")
	if err != nil {
		mongoContainer.Terminate(ctx)
		t.Skipf("Failed to create MongoDB storage: %v", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		mongoStorage.Close(ctx)
		mongoContainer.Terminate(ctx)
	}

	return mongoStorage, cleanup
}

func TestMongoStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test in short mode")
	}

	mongoStorage, cleanup := setupMongoTestContainer(t)
	defer cleanup()

	// Run the common storage tests
	runStorageTests(t, mongoStorage)
}

func TestMongoStorageIDGeneration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test in short mode")
	}

	mongoStorage, cleanup := setupMongoTestContainer(t)
	defer cleanup()

	if got := GenerateTaskID(mongoStorage); got != "task1" {
		t.Errorf("Expected first task ID to be 'task1', got '%s'", got)
	}
	if err := mongoStorage.CreateTask(&dashboard.Task{ID: "task1", Title: "T1"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if got := GenerateTaskID(mongoStorage); got != "task2" {
		t.Errorf("Expected second task ID to be 'task2', got '%s'", got)
	}

	if got := GenerateGoalID(mongoStorage); got != "goal1" {
		t.Errorf("Expected first goal ID to be 'goal1', got '%s'", got)
	}
	if err := mongoStorage.CreateGoal(&dashboard.Goal{ID: "goal1", Title: "G1", Target: 10}); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if got := GenerateGoalID(mongoStorage); got != "goal2" {
		t.Errorf("Expected second goal ID to be 'goal2', got '%s'", got)
	}

	if got := GenerateHealthEntryID(mongoStorage); got != "h1" {
		t.Errorf("Expected first health entry ID to be 'h1', got '%s'", got)
	}
	if err := mongoStorage.CreateHealthEntry(&dashboard.HealthEntry{ID: "h1", Date: "2025-03-10"}); err != nil {
		t.Fatalf("CreateHealthEntry failed: %v", err)
	}
	if got := GenerateHealthEntryID(mongoStorage); got != "h2" {
		t.Errorf("Expected second health entry ID to be 'h2', got '%s'", got)
	}
}

func TestMongoStorageIDGapHandling(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test in short mode")
	}

	mongoStorage, cleanup := setupMongoTestContainer(t)
	defer cleanup()

	// IDs continue past the highest stored suffix, gaps included
	for _, id := range []string{"task5", "task3", "task10"} {
		if err := mongoStorage.CreateTask(&dashboard.Task{ID: id, Title: id}); err != nil {
			t.Fatalf("CreateTask %s failed: %v", id, err)
		}
	}
	if got := GenerateTaskID(mongoStorage); got != "task11" {
		t.Errorf("Expected next task ID to be 'task11', got '%s'", got)
	}
}

func TestMongoStorageErrorCases(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test in short mode")
	}

	mongoStorage, cleanup := setupMongoTestContainer(t)
	defer cleanup()

	t.Run("GetNonExistentTask", func(t *testing.T) {
		_, err := mongoStorage.GetTask("nonexistent")
		if err == nil {
			t.Error("Expected error when getting non-existent task, got nil")
		}
	})

	t.Run("GetNonExistentGoal", func(t *testing.T) {
		_, err := mongoStorage.GetGoal("nonexistent")
		if err == nil {
			t.Error("Expected error when getting non-existent goal, got nil")
		}
	})

	t.Run("GetNonExistentHealthEntry", func(t *testing.T) {
		_, err := mongoStorage.GetHealthEntry("nonexistent")
		if err == nil {
			t.Error("Expected error when getting non-existent health entry, got nil")
		}
	})
}

// TestMongoStorageConnectionError tests behavior when MongoDB is not available
func TestMongoStorageConnectionError(t *testing.T) {
	_, err := NewMongoStorage("mongodb://nonexistent:27017", "test_db")
	if err == nil {
		t.Error("Expected error when connecting to non-existent MongoDB, got nil")
	}
}
