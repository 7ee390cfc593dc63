package telegram

import (
	"strings"
	"testing"
)

func TestFormatCategoryMarkers(t *testing.T) {
	cases := []struct {
		category string
		marker   string
	}{
		{CategoryHealth, "Health Check Reminder"},
		{CategoryTasks, "Task Review Reminder"},
		{CategoryGoals, "Goal Update Reminder"},
		{CategoryWeekly, "Weekly Progress Report"},
		{CategoryMilestone, "Milestone Achieved"},
	}
	for _, tc := range cases {
		got := Format(tc.category, nil)
		if got == "" {
			t.Errorf("Format(%q) returned empty text", tc.category)
		}
		if !strings.Contains(got, tc.marker) {
			t.Errorf("Format(%q) missing marker %q, got: %s", tc.category, tc.marker, got)
		}
	}
}

func TestFormatUnknownCategoryFallsBack(t *testing.T) {
	got := Format("something-else", nil)
	if !strings.Contains(got, "Lifedash Reminder") {
		t.Errorf("expected generic template, got: %s", got)
	}
	if !strings.Contains(got, "Time to check your dashboard!") {
		t.Errorf("expected fallback message, got: %s", got)
	}

	got = Format("something-else", map[string]string{"message": "Custom ping"})
	if !strings.Contains(got, "Custom ping") {
		t.Errorf("expected custom message, got: %s", got)
	}
}

func TestFormatWeeklyFallbacks(t *testing.T) {
	got := Format(CategoryWeekly, map[string]string{})
	for _, want := range []string{
		"Health: N/A",
		"Tasks: 0 completed",
		"Goals: N/A",
		"Finance: N/A",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format(weekly, {}) missing %q, got: %s", want, got)
		}
	}
}

func TestFormatWeeklyInterpolation(t *testing.T) {
	got := Format(CategoryWeekly, map[string]string{
		"healthProgress": "9000 steps/day over 5 entries",
		"tasksCompleted": "7",
		"goalsProgress":  "40% average across 4 goals",
	})
	if !strings.Contains(got, "Tasks: 7 completed") {
		t.Errorf("expected task count interpolated, got: %s", got)
	}
	if !strings.Contains(got, "9000 steps/day") {
		t.Errorf("expected health progress interpolated, got: %s", got)
	}
	if !strings.Contains(got, "Finance: N/A") {
		t.Errorf("expected finance fallback, got: %s", got)
	}
}

func TestFormatMilestoneFallbacks(t *testing.T) {
	got := Format(CategoryMilestone, nil)
	if !strings.Contains(got, "Goal: Milestone reached") {
		t.Errorf("expected milestone fallbacks, got: %s", got)
	}

	got = Format(CategoryMilestone, map[string]string{"goalName": "Read Books", "milestone": "24 books reached"})
	if !strings.Contains(got, "Read Books: 24 books reached") {
		t.Errorf("expected milestone interpolation, got: %s", got)
	}
}
