package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"lifedash/internal/dashboard"
	"lifedash/internal/settings"
	"lifedash/internal/storage"
	"lifedash/internal/telegram"

	"lifedash/internal/scheduler"

	"github.com/gorilla/mux"
)

var (
	Store    storage.Storage
	Telegram *telegram.Client
	Sched    *scheduler.Scheduler
	Mu       sync.Mutex
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeSuccess(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": msg})
}

// writeDispatchError maps a telegram client error onto the API's status
// policy: missing parameters and upstream rejections are 400 with the
// reason, anything else is a generic 500.
func writeDispatchError(w http.ResponseWriter, r *http.Request, err error) {
	var rejected *telegram.RejectedError
	switch {
	case errors.Is(err, telegram.ErrMissingParameters):
		writeError(w, http.StatusBadRequest, "Missing required parameters")
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
	case errors.As(err, &rejected):
		writeError(w, http.StatusBadRequest, rejected.Description)
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		log.Printf("%s %s %s %d - telegram dispatch: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusInternalServerError, err)
	}
}

// Telegram Handlers
func SendReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotToken string            `json:"botToken"`
		ChatID   string            `json:"chatId"`
		Type     string            `json:"type"`
		Data     map[string]string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
		return
	}

	creds := telegram.Credentials{BotToken: req.BotToken, ChatID: req.ChatID}
	if err := Telegram.Send(r.Context(), creds, req.Type, req.Data); err != nil {
		writeDispatchError(w, r, err)
		return
	}
	writeSuccess(w, "Reminder sent successfully!")
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

func TestTelegramHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotToken string `json:"botToken"`
		ChatID   string `json:"chatId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
		return
	}

	creds := telegram.Credentials{BotToken: req.BotToken, ChatID: req.ChatID}
	if err := Telegram.SendTest(r.Context(), creds); err != nil {
		writeDispatchError(w, r, err)
		return
	}
	writeSuccess(w, "Test message sent successfully!")
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

// WeeklyReportHandler builds the weekly data bag from stored records and
// dispatches the weekly progress message.
func WeeklyReportHandler(w http.ResponseWriter, r *http.Request) {
	Mu.Lock()
	st, err := Store.GetSettings()
	if err != nil {
		Mu.Unlock()
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	var goals []*dashboard.Goal
	var entries []*dashboard.HealthEntry
	tasks, err := Store.ListTasks()
	if err == nil {
		goals, err = Store.ListGoals()
	}
	if err == nil {
		entries, err = Store.ListHealthEntries()
	}
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		log.Printf("%s %s %s %d - weekly report: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusInternalServerError, err)
		return
	}

	data := dashboard.WeeklySummary(tasks, goals, entries, time.Now().AddDate(0, 0, -7))
	creds := telegram.Credentials{
		BotToken: st.Preferences.Telegram.BotToken,
		ChatID:   st.Preferences.Telegram.ChatID,
	}
	if err := Telegram.Send(r.Context(), creds, telegram.CategoryWeekly, data); err != nil {
		writeDispatchError(w, r, err)
		return
	}
	writeSuccess(w, "Weekly report sent successfully!")
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

// Settings Handlers
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	Mu.Lock()
	st, err := Store.GetSettings()
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var st settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
		return
	}
	if err := st.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
		return
	}

	Mu.Lock()
	err := Store.SaveSettings(&st)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Replace all reminder timers with the new configuration.
	if Sched != nil {
		Sched.Apply(st.ReminderConfig())
	}

	writeJSON(w, http.StatusOK, &st)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

// Task Handlers
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		DueDate     string `json:"due_date"`
		Category    string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Priority != "" && !dashboard.IsValidPriority(req.Priority) {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}
	if req.DueDate != "" && !dashboard.IsValidDate(req.DueDate) {
		writeError(w, http.StatusBadRequest, "invalid due_date format")
		return
	}

	Mu.Lock()
	id := storage.GenerateTaskID(Store)
	t := dashboard.NewTask(id, req.Title, req.Description, req.Priority, req.DueDate, req.Category)
	err := Store.CreateTask(t)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusCreated)
}

func GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	Mu.Lock()
	t, err := Store.GetTask(id)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		log.Printf("%s %s %s %d - Not Found: task id '%s' does not exist", r.Method, r.URL.Path, r.UserAgent(), http.StatusNotFound, id)
		return
	}
	writeJSON(w, http.StatusOK, t)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

func ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	Mu.Lock()
	list, err := Store.ListTasks()
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*dashboard.Task{}
	}
	writeJSON(w, http.StatusOK, list)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

func UpdateTaskHandler(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	Mu.Lock()
	t, err := Store.GetTask(id)
	if err != nil {
		Mu.Unlock()
		writeError(w, http.StatusNotFound, "task not found")
		log.Printf("%s %s %s %d - Not Found: task id '%s' does not exist (update)", req.Method, req.URL.Path, req.UserAgent(), http.StatusNotFound, id)
		return
	}
	var patch map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&patch); err != nil {
		Mu.Unlock()
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	updated := false
	for k, v := range patch {
		switch k {
		case "title":
			if s, ok := v.(string); ok {
				t.Title = s
				updated = true
			}
		case "description":
			if s, ok := v.(string); ok {
				t.Description = s
				updated = true
			}
		case "priority":
			if s, ok := v.(string); ok && dashboard.IsValidPriority(s) {
				t.Priority = s
				updated = true
			}
		case "due_date":
			if s, ok := v.(string); ok && dashboard.IsValidDate(s) {
				t.DueDate = s
				updated = true
			}
		case "category":
			if s, ok := v.(string); ok {
				t.Category = s
				updated = true
			}
		case "completed":
			if b, ok := v.(bool); ok {
				t.Completed = b
				updated = true
			}
		}
	}
	if updated {
		err = Store.CreateTask(t) // Overwrite existing
	}
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
	log.Printf("%s %s %s %d - PATCH task %s", req.Method, req.URL.Path, req.UserAgent(), http.StatusOK, id)
}

func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	Mu.Lock()
	err := Store.DeleteTask(id)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusNoContent)
}

// Goal Handlers
func CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Target      int    `json:"target"`
		Unit        string `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Target <= 0 {
		writeError(w, http.StatusBadRequest, "target must be positive")
		return
	}

	Mu.Lock()
	id := storage.GenerateGoalID(Store)
	g := dashboard.NewGoal(id, req.Title, req.Description, req.Category, req.Target, req.Unit)
	err := Store.CreateGoal(g)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, g)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusCreated)
}

func GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	Mu.Lock()
	g, err := Store.GetGoal(id)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusNotFound, "goal not found")
		log.Printf("%s %s %s %d - Not Found: goal id '%s' does not exist", r.Method, r.URL.Path, r.UserAgent(), http.StatusNotFound, id)
		return
	}
	writeJSON(w, http.StatusOK, g)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

func ListGoalsHandler(w http.ResponseWriter, r *http.Request) {
	Mu.Lock()
	list, err := Store.ListGoals()
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*dashboard.Goal{}
	}
	writeJSON(w, http.StatusOK, list)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

func UpdateGoalHandler(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	Mu.Lock()
	g, err := Store.GetGoal(id)
	if err != nil {
		Mu.Unlock()
		writeError(w, http.StatusNotFound, "goal not found")
		log.Printf("%s %s %s %d - Not Found: goal id '%s' does not exist (update)", req.Method, req.URL.Path, req.UserAgent(), http.StatusNotFound, id)
		return
	}
	var patch map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&patch); err != nil {
		Mu.Unlock()
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	wasCompleted := g.Completed()
	updated := false
	for k, v := range patch {
		switch k {
		case "title":
			if s, ok := v.(string); ok {
				g.Title = s
				updated = true
			}
		case "description":
			if s, ok := v.(string); ok {
				g.Description = s
				updated = true
			}
		case "category":
			if s, ok := v.(string); ok {
				g.Category = s
				updated = true
			}
		case "progress":
			if n, ok := v.(float64); ok && n >= 0 {
				g.Progress = int(n)
				updated = true
			}
		case "target":
			if n, ok := v.(float64); ok && n > 0 {
				g.Target = int(n)
				updated = true
			}
		case "unit":
			if s, ok := v.(string); ok {
				g.Unit = s
				updated = true
			}
		}
	}
	if updated {
		err = Store.CreateGoal(g) // Overwrite existing
	}
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !wasCompleted && g.Completed() {
		go notifyMilestone(g)
	}

	writeJSON(w, http.StatusOK, g)
	log.Printf("%s %s %s %d - PATCH goal %s", req.Method, req.URL.Path, req.UserAgent(), http.StatusOK, id)
}

func DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	Mu.Lock()
	err := Store.DeleteGoal(id)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusNoContent)
}

// notifyMilestone pushes a milestone message when a goal reaches its
// target. Fire-and-forget: failures are logged only.
func notifyMilestone(g *dashboard.Goal) {
	st, err := Store.GetSettings()
	if err != nil {
		log.Printf("milestone notification: load settings: %v", err)
		return
	}
	if !st.Preferences.Notifications.TelegramEnabled || !st.Preferences.Notifications.GoalMilestones {
		return
	}
	creds := telegram.Credentials{
		BotToken: st.Preferences.Telegram.BotToken,
		ChatID:   st.Preferences.Telegram.ChatID,
	}
	data := map[string]string{
		"goalName":  g.Title,
		"milestone": fmt.Sprintf("%d %s reached", g.Target, g.Unit),
	}
	if err := Telegram.Send(context.Background(), creds, telegram.CategoryMilestone, data); err != nil {
		log.Printf("milestone notification: goal %s: %v", g.ID, err)
	}
}

// Health Entry Handlers
func CreateHealthEntryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string  `json:"date"`
		Weight float64 `json:"weight"`
		Steps  int     `json:"steps"`
		Water  float64 `json:"water"`
		Sleep  float64 `json:"sleep"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		log.Printf("%s %s %s %d - Bad Request: %v", r.Method, r.URL.Path, r.UserAgent(), http.StatusBadRequest, err)
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format(dashboard.DateLayout)
	}
	if !dashboard.IsValidDate(req.Date) {
		writeError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	Mu.Lock()
	id := storage.GenerateHealthEntryID(Store)
	e := dashboard.NewHealthEntry(id, req.Date, req.Weight, req.Steps, req.Water, req.Sleep)
	err := Store.CreateHealthEntry(e)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, e)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusCreated)
}

func ListHealthEntriesHandler(w http.ResponseWriter, r *http.Request) {
	Mu.Lock()
	list, err := Store.ListHealthEntries()
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*dashboard.HealthEntry{}
	}
	writeJSON(w, http.StatusOK, list)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusOK)
}

func DeleteHealthEntryHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	Mu.Lock()
	err := Store.DeleteHealthEntry(id)
	Mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
	log.Printf("%s %s %s %d", r.Method, r.URL.Path, r.UserAgent(), http.StatusNoContent)
}
