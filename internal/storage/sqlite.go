package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"lifedash/internal/dashboard"
	"lifedash/internal/settings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStorage struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	s := &SQLiteStorage{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			completed BOOLEAN NOT NULL DEFAULT 0,
			priority TEXT NOT NULL,
			due_date TEXT, -- YYYY-MM-DD
			category TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT,
			progress INTEGER NOT NULL DEFAULT 0,
			target INTEGER NOT NULL,
			unit TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS health_entries (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL, -- YYYY-MM-DD
			weight REAL,
			steps INTEGER,
			water REAL,
			sleep REAL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			doc TEXT NOT NULL -- JSON settings document
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %q: %w", query, err)
		}
	}

	return nil
}

// Task operations
func (s *SQLiteStorage) CreateTask(t *dashboard.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO tasks (id, title, description, completed, priority, due_date, category) VALUES (?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.Title, t.Description, t.Completed, t.Priority, t.DueDate, t.Category)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetTask(id string) (*dashboard.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t dashboard.Task
	err := s.db.QueryRow(
		"SELECT id, title, description, completed, priority, due_date, category FROM tasks WHERE id = ?", id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.DueDate, &t.Category)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("task not found")
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

func (s *SQLiteStorage) ListTasks() ([]*dashboard.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id, title, description, completed, priority, due_date, category FROM tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var list []*dashboard.Task
	for rows.Next() {
		var t dashboard.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.DueDate, &t.Category); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (s *SQLiteStorage) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Goal operations
func (s *SQLiteStorage) CreateGoal(g *dashboard.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO goals (id, title, description, category, progress, target, unit) VALUES (?, ?, ?, ?, ?, ?, ?)",
		g.ID, g.Title, g.Description, g.Category, g.Progress, g.Target, g.Unit)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetGoal(id string) (*dashboard.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var g dashboard.Goal
	err := s.db.QueryRow(
		"SELECT id, title, description, category, progress, target, unit FROM goals WHERE id = ?", id).
		Scan(&g.ID, &g.Title, &g.Description, &g.Category, &g.Progress, &g.Target, &g.Unit)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("goal not found")
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &g, nil
}

func (s *SQLiteStorage) ListGoals() ([]*dashboard.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id, title, description, category, progress, target, unit FROM goals")
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var list []*dashboard.Goal
	for rows.Next() {
		var g dashboard.Goal
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Category, &g.Progress, &g.Target, &g.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

func (s *SQLiteStorage) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// Health entry operations
func (s *SQLiteStorage) CreateHealthEntry(e *dashboard.HealthEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO health_entries (id, date, weight, steps, water, sleep) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.Date, e.Weight, e.Steps, e.Water, e.Sleep)
	if err != nil {
		return fmt.Errorf("failed to create health entry: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetHealthEntry(id string) (*dashboard.HealthEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var e dashboard.HealthEntry
	err := s.db.QueryRow(
		"SELECT id, date, weight, steps, water, sleep FROM health_entries WHERE id = ?", id).
		Scan(&e.ID, &e.Date, &e.Weight, &e.Steps, &e.Water, &e.Sleep)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("health entry not found")
		}
		return nil, fmt.Errorf("failed to get health entry: %w", err)
	}
	return &e, nil
}

func (s *SQLiteStorage) ListHealthEntries() ([]*dashboard.HealthEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id, date, weight, steps, water, sleep FROM health_entries")
	if err != nil {
		return nil, fmt.Errorf("failed to list health entries: %w", err)
	}
	defer rows.Close()

	var list []*dashboard.HealthEntry
	for rows.Next() {
		var e dashboard.HealthEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Weight, &e.Steps, &e.Water, &e.Sleep); err != nil {
			return nil, fmt.Errorf("failed to scan health entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (s *SQLiteStorage) DeleteHealthEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM health_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete health entry: %w", err)
	}
	return nil
}

// Settings operations
func (s *SQLiteStorage) GetSettings() (*settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc string
	err := s.db.QueryRow("SELECT doc FROM settings WHERE id = 1").Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return settings.Default(), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var st settings.Settings
	if err := json.Unmarshal([]byte(doc), &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &st, nil
}

func (s *SQLiteStorage) SaveSettings(st *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	_, err = s.db.Exec("INSERT OR REPLACE INTO settings (id, doc) VALUES (1, ?)", string(doc))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
