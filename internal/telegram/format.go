package telegram

// Reminder categories with dedicated message templates. Anything else gets
// the generic template.
const (
	CategoryHealth    = "health"
	CategoryTasks     = "tasks"
	CategoryGoals     = "goals"
	CategoryWeekly    = "weekly"
	CategoryMilestone = "milestone"
)

// Format renders the notification text for a category. The data bag is
// optional; missing fields fall back to literals so formatting never fails.
func Format(category string, data map[string]string) string {
	switch category {
	case CategoryHealth:
		return "🏃‍♂️ <b>Health Check Reminder</b>\n\nTime to log your daily health metrics:\n• Weight\n• Steps taken\n• Water intake\n• Sleep hours\n\nStay consistent with your health goals! 💪"

	case CategoryTasks:
		return "📋 <b>Task Review Reminder</b>\n\nTime to review your tasks:\n• Check pending tasks\n• Update task progress\n• Plan tomorrow's priorities\n\nStay productive! ✅"

	case CategoryGoals:
		return "🎯 <b>Goal Update Reminder</b>\n\nTime to update your personal growth:\n• Log progress on current goals\n• Celebrate completed milestones\n• Adjust targets if needed\n\nKeep growing! 🌱"

	case CategoryWeekly:
		return "📊 <b>Weekly Progress Report</b>\n\nHere's your week in review:\n" +
			"• Health: " + field(data, "healthProgress", "N/A") + "\n" +
			"• Tasks: " + field(data, "tasksCompleted", "0") + " completed\n" +
			"• Goals: " + field(data, "goalsProgress", "N/A") + "\n" +
			"• Finance: " + field(data, "financeUpdate", "N/A") + "\n" +
			"\nGreat work this week! 🎉"

	case CategoryMilestone:
		return "🎉 <b>Milestone Achieved!</b>\n\n" +
			field(data, "goalName", "Goal") + ": " + field(data, "milestone", "Milestone reached") +
			"\n\nCongratulations on your progress! Keep it up! 🌟"

	default:
		return "📱 <b>Lifedash Reminder</b>\n\n" + field(data, "message", "Time to check your dashboard!")
	}
}

// TestMessage is sent by the connectivity check endpoint.
const TestMessage = "🎯 Test message from Lifedash!\n\nYour Telegram notifications are working correctly. You'll receive reminders for:\n• Health metrics\n• Task deadlines\n• Goal milestones\n• Weekly progress reports"

func field(data map[string]string, key, fallback string) string {
	if v, ok := data[key]; ok && v != "" {
		return v
	}
	return fallback
}
