package settings

import (
	"encoding/json"
	"testing"

	"lifedash/internal/scheduler"
)

func TestDefault(t *testing.T) {
	st := Default()
	rt := st.Preferences.Telegram.ReminderTimes
	if rt.HealthCheck != "09:00" || rt.TaskReview != "18:00" || rt.GoalUpdate != "20:00" {
		t.Errorf("unexpected default reminder times: %+v", rt)
	}
	if st.Preferences.Notifications.TelegramEnabled {
		t.Error("telegram must be disabled by default")
	}
	if st.Goals.Health.DailySteps != 10000 {
		t.Errorf("daily steps default: got %d, want 10000", st.Goals.Health.DailySteps)
	}
	if err := st.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	st := Default()
	st.Preferences.Telegram.ReminderTimes.TaskReview = "25:00"
	if err := st.Validate(); err == nil {
		t.Error("expected error for 25:00, got nil")
	}

	st = Default()
	st.Preferences.Telegram.ReminderTimes.GoalUpdate = ""
	if err := st.Validate(); err == nil {
		t.Error("expected error for empty time, got nil")
	}
}

func TestReminderConfig(t *testing.T) {
	st := Default()
	st.Preferences.Notifications.TelegramEnabled = true
	st.Preferences.Telegram.BotToken = "T"
	st.Preferences.Telegram.ChatID = "C"

	cfg := st.ReminderConfig()
	if !cfg.Enabled || cfg.BotToken != "T" || cfg.ChatID != "C" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Times[scheduler.CategoryHealth] != "09:00" {
		t.Errorf("health time: got %s", cfg.Times[scheduler.CategoryHealth])
	}
	if cfg.Times[scheduler.CategoryTasks] != "18:00" {
		t.Errorf("tasks time: got %s", cfg.Times[scheduler.CategoryTasks])
	}
	if cfg.Times[scheduler.CategoryGoals] != "20:00" {
		t.Errorf("goals time: got %s", cfg.Times[scheduler.CategoryGoals])
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Default())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	prefs, ok := doc["preferences"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing preferences object: %s", data)
	}
	tg, ok := prefs["telegram"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing telegram object: %s", data)
	}
	for _, key := range []string{"botToken", "chatId", "reminderTimes"} {
		if _, ok := tg[key]; !ok {
			t.Errorf("missing %s field: %s", key, data)
		}
	}
}
