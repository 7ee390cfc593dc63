package storage

import (
	"os"
	"reflect"
	"testing"

	"lifedash/internal/dashboard"
	"lifedash/internal/settings"
)

func testTask() *dashboard.Task {
	return &dashboard.Task{
		ID:          "task1",
		Title:       "Team meeting preparation",
		Description: "Prepare slides",
		Priority:    dashboard.PriorityHigh,
		DueDate:     "2025-03-15",
		Category:    "Work",
	}
}

func testGoal() *dashboard.Goal {
	return &dashboard.Goal{
		ID:          "goal1",
		Title:       "Read Books",
		Description: "Read 24 books this year",
		Category:    "Learning",
		Progress:    8,
		Target:      24,
		Unit:        "books",
	}
}

func testHealthEntry() *dashboard.HealthEntry {
	return &dashboard.HealthEntry{
		ID:     "h1",
		Date:   "2025-03-10",
		Weight: 69.5,
		Steps:  9800,
		Water:  2.2,
		Sleep:  7.8,
	}
}

func runStorageTests(t *testing.T, store Storage) {
	// Task CRUD
	task := testTask()
	if err := store.CreateTask(task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	gotTask, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if !reflect.DeepEqual(gotTask, task) {
		t.Errorf("GetTask: got %+v, want %+v", gotTask, task)
	}
	tasks, err := store.ListTasks()
	if err != nil || len(tasks) != 1 {
		t.Errorf("ListTasks: got %d, want 1", len(tasks))
	}
	// Create with an existing ID overwrites.
	task.Completed = true
	if err := store.CreateTask(task); err != nil {
		t.Fatalf("CreateTask (overwrite) failed: %v", err)
	}
	gotTask, err = store.GetTask(task.ID)
	if err != nil || !gotTask.Completed {
		t.Errorf("overwrite not applied: got %+v, err %v", gotTask, err)
	}
	tasks, _ = store.ListTasks()
	if len(tasks) != 1 {
		t.Errorf("ListTasks after overwrite: got %d, want 1", len(tasks))
	}
	if err := store.DeleteTask(task.ID); err != nil {
		t.Errorf("DeleteTask failed: %v", err)
	}
	_, err = store.GetTask(task.ID)
	if err == nil {
		t.Errorf("expected error after DeleteTask, got nil")
	}

	// Goal CRUD
	goal := testGoal()
	if err := store.CreateGoal(goal); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	gotGoal, err := store.GetGoal(goal.ID)
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if !reflect.DeepEqual(gotGoal, goal) {
		t.Errorf("GetGoal: got %+v, want %+v", gotGoal, goal)
	}
	goals, err := store.ListGoals()
	if err != nil || len(goals) != 1 {
		t.Errorf("ListGoals: got %d, want 1", len(goals))
	}
	if err := store.DeleteGoal(goal.ID); err != nil {
		t.Errorf("DeleteGoal failed: %v", err)
	}
	_, err = store.GetGoal(goal.ID)
	if err == nil {
		t.Errorf("expected error after DeleteGoal, got nil")
	}

	// Health entry CRUD
	entry := testHealthEntry()
	if err := store.CreateHealthEntry(entry); err != nil {
		t.Fatalf("CreateHealthEntry failed: %v", err)
	}
	gotEntry, err := store.GetHealthEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetHealthEntry failed: %v", err)
	}
	if !reflect.DeepEqual(gotEntry, entry) {
		t.Errorf("GetHealthEntry: got %+v, want %+v", gotEntry, entry)
	}
	entries, err := store.ListHealthEntries()
	if err != nil || len(entries) != 1 {
		t.Errorf("ListHealthEntries: got %d, want 1", len(entries))
	}
	if err := store.DeleteHealthEntry(entry.ID); err != nil {
		t.Errorf("DeleteHealthEntry failed: %v", err)
	}
	_, err = store.GetHealthEntry(entry.ID)
	if err == nil {
		t.Errorf("expected error after DeleteHealthEntry, got nil")
	}

	// Settings: defaults until saved, then the saved document
	st, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if !reflect.DeepEqual(st, settings.Default()) {
		t.Errorf("GetSettings before save: got %+v, want defaults", st)
	}
	st.Preferences.Telegram.BotToken = "T"
	st.Preferences.Telegram.ReminderTimes.HealthCheck = "07:30"
	if err := store.SaveSettings(st); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	gotSt, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings after save failed: %v", err)
	}
	if gotSt.Preferences.Telegram.BotToken != "T" ||
		gotSt.Preferences.Telegram.ReminderTimes.HealthCheck != "07:30" {
		t.Errorf("GetSettings after save: got %+v", gotSt.Preferences.Telegram)
	}
}

func TestMemoryStorage(t *testing.T) {
	store := NewMemoryStorage()
	runStorageTests(t, store)
}

func TestFileStorage(t *testing.T) {
	taskFile := "test_tasks.json"
	goalFile := "test_goals.json"
	healthFile := "test_health_entries.json"
	settingsFile := "test_settings.json"
	// Clean up files before and after
	os.Remove(taskFile)
	os.Remove(goalFile)
	os.Remove(healthFile)
	os.Remove(settingsFile)
	defer os.Remove(taskFile)
	defer os.Remove(goalFile)
	defer os.Remove(healthFile)
	defer os.Remove(settingsFile)

	store := NewFileStorage(taskFile, goalFile, healthFile, settingsFile)
	runStorageTests(t, store)
}

func TestFileStorageIDPersistence(t *testing.T) {
	taskFile := "test_tasks_id.json"
	goalFile := "test_goals_id.json"
	healthFile := "test_health_entries_id.json"
	settingsFile := "test_settings_id.json"
	os.Remove(taskFile)
	os.Remove(goalFile)
	os.Remove(healthFile)
	os.Remove(settingsFile)
	defer os.Remove(taskFile)
	defer os.Remove(goalFile)
	defer os.Remove(healthFile)
	defer os.Remove(settingsFile)

	store := NewFileStorage(taskFile, goalFile, healthFile, settingsFile)

	t1 := &dashboard.Task{ID: GenerateTaskID(store), Title: "T1"}
	if err := store.CreateTask(t1); err != nil {
		t.Fatalf("CreateTask t1 failed: %v", err)
	}
	t2 := &dashboard.Task{ID: GenerateTaskID(store), Title: "T2"}
	if err := store.CreateTask(t2); err != nil {
		t.Fatalf("CreateTask t2 failed: %v", err)
	}
	if t1.ID != "task1" || t2.ID != "task2" {
		t.Errorf("task IDs: got %s, %s", t1.ID, t2.ID)
	}

	g1 := &dashboard.Goal{ID: GenerateGoalID(store), Title: "G1", Target: 10}
	if err := store.CreateGoal(g1); err != nil {
		t.Fatalf("CreateGoal g1 failed: %v", err)
	}
	e1 := &dashboard.HealthEntry{ID: GenerateHealthEntryID(store), Date: "2025-03-10"}
	if err := store.CreateHealthEntry(e1); err != nil {
		t.Fatalf("CreateHealthEntry e1 failed: %v", err)
	}

	// Reload storage and check generated IDs continue from stored records
	store2 := NewFileStorage(taskFile, goalFile, healthFile, settingsFile)
	if got := GenerateTaskID(store2); got != "task3" {
		t.Errorf("next task ID after reload: got %s, want task3", got)
	}
	if got := GenerateGoalID(store2); got != "goal2" {
		t.Errorf("next goal ID after reload: got %s, want goal2", got)
	}
	if got := GenerateHealthEntryID(store2); got != "h2" {
		t.Errorf("next health entry ID after reload: got %s, want h2", got)
	}
}
