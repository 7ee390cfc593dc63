package storage

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"sync"

	"lifedash/internal/dashboard"
	"lifedash/internal/settings"
)

type FileStorage struct {
	taskFile        string
	goalFile        string
	healthEntryFile string
	settingsFile    string
	mu              sync.Mutex
}

func NewFileStorage(taskFile, goalFile, healthEntryFile, settingsFile string) *FileStorage {
	return &FileStorage{
		taskFile:        taskFile,
		goalFile:        goalFile,
		healthEntryFile: healthEntryFile,
		settingsFile:    settingsFile,
	}
}

// Helper functions for file IO
func loadMap[T any](path string) (map[string]*T, error) {
	m := make(map[string]*T)
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func saveMap[T any](path string, m map[string]*T) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

// Task operations
func (fs *FileStorage) CreateTask(t *dashboard.Task) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	tasks, err := loadMap[dashboard.Task](fs.taskFile)
	if err != nil {
		return err
	}
	tasks[t.ID] = t
	return saveMap(fs.taskFile, tasks)
}

func (fs *FileStorage) GetTask(id string) (*dashboard.Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	tasks, err := loadMap[dashboard.Task](fs.taskFile)
	if err != nil {
		return nil, err
	}
	t, ok := tasks[id]
	if !ok {
		return nil, errors.New("task not found")
	}
	return t, nil
}

func (fs *FileStorage) ListTasks() ([]*dashboard.Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	tasks, err := loadMap[dashboard.Task](fs.taskFile)
	if err != nil {
		return nil, err
	}
	var list []*dashboard.Task
	for _, t := range tasks {
		list = append(list, t)
	}
	return list, nil
}

func (fs *FileStorage) DeleteTask(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	tasks, err := loadMap[dashboard.Task](fs.taskFile)
	if err != nil {
		return err
	}
	delete(tasks, id)
	return saveMap(fs.taskFile, tasks)
}

// Goal operations
func (fs *FileStorage) CreateGoal(g *dashboard.Goal) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	goals, err := loadMap[dashboard.Goal](fs.goalFile)
	if err != nil {
		return err
	}
	goals[g.ID] = g
	return saveMap(fs.goalFile, goals)
}

func (fs *FileStorage) GetGoal(id string) (*dashboard.Goal, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	goals, err := loadMap[dashboard.Goal](fs.goalFile)
	if err != nil {
		return nil, err
	}
	g, ok := goals[id]
	if !ok {
		return nil, errors.New("goal not found")
	}
	return g, nil
}

func (fs *FileStorage) ListGoals() ([]*dashboard.Goal, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	goals, err := loadMap[dashboard.Goal](fs.goalFile)
	if err != nil {
		return nil, err
	}
	var list []*dashboard.Goal
	for _, g := range goals {
		list = append(list, g)
	}
	return list, nil
}

func (fs *FileStorage) DeleteGoal(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	goals, err := loadMap[dashboard.Goal](fs.goalFile)
	if err != nil {
		return err
	}
	delete(goals, id)
	return saveMap(fs.goalFile, goals)
}

// Health entry operations
func (fs *FileStorage) CreateHealthEntry(e *dashboard.HealthEntry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	entries, err := loadMap[dashboard.HealthEntry](fs.healthEntryFile)
	if err != nil {
		return err
	}
	entries[e.ID] = e
	return saveMap(fs.healthEntryFile, entries)
}

func (fs *FileStorage) GetHealthEntry(id string) (*dashboard.HealthEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	entries, err := loadMap[dashboard.HealthEntry](fs.healthEntryFile)
	if err != nil {
		return nil, err
	}
	e, ok := entries[id]
	if !ok {
		return nil, errors.New("health entry not found")
	}
	return e, nil
}

func (fs *FileStorage) ListHealthEntries() ([]*dashboard.HealthEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	entries, err := loadMap[dashboard.HealthEntry](fs.healthEntryFile)
	if err != nil {
		return nil, err
	}
	var list []*dashboard.HealthEntry
	for _, e := range entries {
		list = append(list, e)
	}
	return list, nil
}

func (fs *FileStorage) DeleteHealthEntry(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	entries, err := loadMap[dashboard.HealthEntry](fs.healthEntryFile)
	if err != nil {
		return err
	}
	delete(entries, id)
	return saveMap(fs.healthEntryFile, entries)
}

// Settings operations
func (fs *FileStorage) GetSettings() (*settings.Settings, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, err := ioutil.ReadFile(fs.settingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return settings.Default(), nil
		}
		return nil, err
	}
	var s settings.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (fs *FileStorage) SaveSettings(s *settings.Settings) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fs.settingsFile, data, 0644)
}
