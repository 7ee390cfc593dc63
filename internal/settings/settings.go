package settings

import (
	"fmt"

	"lifedash/internal/scheduler"
)

// Settings is the single-user settings document edited from the dashboard's
// settings page.
type Settings struct {
	Goals       GoalTargets `json:"goals"`
	Preferences Preferences `json:"preferences"`
}

type GoalTargets struct {
	Health  HealthTargets  `json:"health"`
	Finance FinanceTargets `json:"finance"`
	Tasks   TaskTargets    `json:"tasks"`
	Growth  GrowthTargets  `json:"growth"`
}

type HealthTargets struct {
	TargetWeight float64 `json:"targetWeight"`
	DailySteps   int     `json:"dailySteps"`
	DailyWater   float64 `json:"dailyWater"`
	DailySleep   float64 `json:"dailySleep"`
}

type FinanceTargets struct {
	EmergencyFund    float64 `json:"emergencyFund"`
	MonthlyBudget    float64 `json:"monthlyBudget"`
	SavingsRate      float64 `json:"savingsRate"`
	InvestmentTarget float64 `json:"investmentTarget"`
}

type TaskTargets struct {
	DailyTaskTarget   int `json:"dailyTaskTarget"`
	WeeklyTaskTarget  int `json:"weeklyTaskTarget"`
	HighPriorityLimit int `json:"highPriorityLimit"`
}

type GrowthTargets struct {
	MonthlyGoalLimit    int    `json:"monthlyGoalLimit"`
	YearlyGoalLimit     int    `json:"yearlyGoalLimit"`
	DefaultProgressUnit string `json:"defaultProgressUnit"`
}

type Preferences struct {
	Notifications Notifications `json:"notifications"`
	Display       Display       `json:"display"`
	Telegram      Telegram      `json:"telegram"`
}

type Notifications struct {
	HealthReminders bool `json:"healthReminders"`
	TaskDeadlines   bool `json:"taskDeadlines"`
	GoalMilestones  bool `json:"goalMilestones"`
	WeeklyReports   bool `json:"weeklyReports"`
	TelegramEnabled bool `json:"telegramEnabled"`
}

type Display struct {
	DarkMode           bool `json:"darkMode"`
	CompactView        bool `json:"compactView"`
	ShowCompletedTasks bool `json:"showCompletedTasks"`
}

type Telegram struct {
	BotToken      string        `json:"botToken"`
	ChatID        string        `json:"chatId"`
	ReminderTimes ReminderTimes `json:"reminderTimes"`
}

// ReminderTimes always carries exactly these three triggers; there is no
// partial configuration.
type ReminderTimes struct {
	HealthCheck string `json:"healthCheck"`
	TaskReview  string `json:"taskReview"`
	GoalUpdate  string `json:"goalUpdate"`
}

// Default returns the settings a fresh install starts with.
func Default() *Settings {
	return &Settings{
		Goals: GoalTargets{
			Health: HealthTargets{
				TargetWeight: 68,
				DailySteps:   10000,
				DailyWater:   2.5,
				DailySleep:   8,
			},
			Finance: FinanceTargets{
				EmergencyFund:    10000,
				MonthlyBudget:    3000,
				SavingsRate:      20,
				InvestmentTarget: 100000,
			},
			Tasks: TaskTargets{
				DailyTaskTarget:   5,
				WeeklyTaskTarget:  30,
				HighPriorityLimit: 3,
			},
			Growth: GrowthTargets{
				MonthlyGoalLimit:    5,
				YearlyGoalLimit:     12,
				DefaultProgressUnit: "hours",
			},
		},
		Preferences: Preferences{
			Notifications: Notifications{
				HealthReminders: true,
				TaskDeadlines:   true,
				GoalMilestones:  true,
				WeeklyReports:   false,
				TelegramEnabled: false,
			},
			Display: Display{
				DarkMode:           false,
				CompactView:        false,
				ShowCompletedTasks: true,
			},
			Telegram: Telegram{
				BotToken: "",
				ChatID:   "",
				ReminderTimes: ReminderTimes{
					HealthCheck: "09:00",
					TaskReview:  "18:00",
					GoalUpdate:  "20:00",
				},
			},
		},
	}
}

// Validate checks the three trigger times.
func (s *Settings) Validate() error {
	times := map[string]string{
		"healthCheck": s.Preferences.Telegram.ReminderTimes.HealthCheck,
		"taskReview":  s.Preferences.Telegram.ReminderTimes.TaskReview,
		"goalUpdate":  s.Preferences.Telegram.ReminderTimes.GoalUpdate,
	}
	for name, spec := range times {
		if _, _, err := scheduler.ParseTimeOfDay(spec); err != nil {
			return fmt.Errorf("reminder time %s: %v", name, err)
		}
	}
	return nil
}

// ReminderConfig projects the scheduler configuration out of the settings
// document.
func (s *Settings) ReminderConfig() scheduler.Config {
	tg := s.Preferences.Telegram
	return scheduler.Config{
		Enabled:  s.Preferences.Notifications.TelegramEnabled,
		BotToken: tg.BotToken,
		ChatID:   tg.ChatID,
		Times: map[scheduler.Category]string{
			scheduler.CategoryHealth: tg.ReminderTimes.HealthCheck,
			scheduler.CategoryTasks:  tg.ReminderTimes.TaskReview,
			scheduler.CategoryGoals:  tg.ReminderTimes.GoalUpdate,
		},
	}
}
