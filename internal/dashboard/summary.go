package dashboard

import (
	"fmt"
	"strconv"
	"time"
)

// WeeklySummary builds the data bag interpolated into the weekly progress
// message. Keys with nothing to report are left out so the formatter's
// fallbacks apply.
func WeeklySummary(tasks []*Task, goals []*Goal, entries []*HealthEntry, since time.Time) map[string]string {
	data := make(map[string]string)

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	data["tasksCompleted"] = strconv.Itoa(completed)

	var steps, count int
	for _, e := range entries {
		if e.On(since) {
			steps += e.Steps
			count++
		}
	}
	if count > 0 {
		data["healthProgress"] = fmt.Sprintf("%d steps/day over %d entries", steps/count, count)
	}

	if len(goals) > 0 {
		total := 0
		for _, g := range goals {
			total += g.Percent()
		}
		data["goalsProgress"] = fmt.Sprintf("%d%% average across %d goals", total/len(goals), len(goals))
	}

	// No finance records exist yet; the formatter substitutes its fallback.
	return data
}
