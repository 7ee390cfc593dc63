package storage

import (
	"errors"
	"sync"

	"lifedash/internal/dashboard"
	"lifedash/internal/settings"
)

type MemoryStorage struct {
	tasks         map[string]*dashboard.Task
	goals         map[string]*dashboard.Goal
	healthEntries map[string]*dashboard.HealthEntry
	settings      *settings.Settings
	mu            sync.Mutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		tasks:         make(map[string]*dashboard.Task),
		goals:         make(map[string]*dashboard.Goal),
		healthEntries: make(map[string]*dashboard.HealthEntry),
	}
}

// Task operations
func (m *MemoryStorage) CreateTask(t *dashboard.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[t.ID] = t
	return nil
}

func (m *MemoryStorage) GetTask(id string) (*dashboard.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, errors.New("task not found")
	}
	return t, nil
}

func (m *MemoryStorage) ListTasks() ([]*dashboard.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*dashboard.Task
	for _, t := range m.tasks {
		list = append(list, t)
	}
	return list, nil
}

func (m *MemoryStorage) DeleteTask(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

// Goal operations
func (m *MemoryStorage) CreateGoal(g *dashboard.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = g
	return nil
}

func (m *MemoryStorage) GetGoal(id string) (*dashboard.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, errors.New("goal not found")
	}
	return g, nil
}

func (m *MemoryStorage) ListGoals() ([]*dashboard.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*dashboard.Goal
	for _, g := range m.goals {
		list = append(list, g)
	}
	return list, nil
}

func (m *MemoryStorage) DeleteGoal(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.goals, id)
	return nil
}

// Health entry operations
func (m *MemoryStorage) CreateHealthEntry(e *dashboard.HealthEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthEntries[e.ID] = e
	return nil
}

func (m *MemoryStorage) GetHealthEntry(id string) (*dashboard.HealthEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.healthEntries[id]
	if !ok {
		return nil, errors.New("health entry not found")
	}
	return e, nil
}

func (m *MemoryStorage) ListHealthEntries() ([]*dashboard.HealthEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*dashboard.HealthEntry
	for _, e := range m.healthEntries {
		list = append(list, e)
	}
	return list, nil
}

func (m *MemoryStorage) DeleteHealthEntry(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.healthEntries, id)
	return nil
}

// Settings operations
func (m *MemoryStorage) GetSettings() (*settings.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return settings.Default(), nil
	}
	return m.settings, nil
}

func (m *MemoryStorage) SaveSettings(s *settings.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}
