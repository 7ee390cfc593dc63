package storage

import (
	"fmt"
	"strconv"
	"strings"

	"lifedash/internal/dashboard"
	"lifedash/internal/settings"
)

// Storage defines the interface for data persistence for tasks, goals,
// health entries, and the settings document. Create calls overwrite any
// existing record with the same ID.
type Storage interface {
	// Task operations
	CreateTask(t *dashboard.Task) error
	GetTask(id string) (*dashboard.Task, error)
	ListTasks() ([]*dashboard.Task, error)
	DeleteTask(id string) error

	// Goal operations
	CreateGoal(g *dashboard.Goal) error
	GetGoal(id string) (*dashboard.Goal, error)
	ListGoals() ([]*dashboard.Goal, error)
	DeleteGoal(id string) error

	// Health entry operations
	CreateHealthEntry(e *dashboard.HealthEntry) error
	GetHealthEntry(id string) (*dashboard.HealthEntry, error)
	ListHealthEntries() ([]*dashboard.HealthEntry, error)
	DeleteHealthEntry(id string) error

	// Settings operations. GetSettings returns the defaults until a
	// document has been saved.
	GetSettings() (*settings.Settings, error)
	SaveSettings(s *settings.Settings) error
}

// GenerateTaskID returns the next unused task ID.
func GenerateTaskID(s Storage) string {
	tasks, _ := s.ListTasks()
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return nextID("task", ids)
}

// GenerateGoalID returns the next unused goal ID.
func GenerateGoalID(s Storage) string {
	goals, _ := s.ListGoals()
	ids := make([]string, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	return nextID("goal", ids)
}

// GenerateHealthEntryID returns the next unused health entry ID.
func GenerateHealthEntryID(s Storage) string {
	entries, _ := s.ListHealthEntries()
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return nextID("h", ids)
}

func nextID(prefix string, ids []string) string {
	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%d", prefix, max+1)
}
