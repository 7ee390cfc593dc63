package dashboard

import "time"

// DateLayout is the wire format for entry dates.
const DateLayout = "2006-01-02"

type HealthEntry struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Weight float64 `json:"weight"`
	Steps  int     `json:"steps"`
	Water  float64 `json:"water"`
	Sleep  float64 `json:"sleep"`
}

func NewHealthEntry(id, date string, weight float64, steps int, water, sleep float64) *HealthEntry {
	return &HealthEntry{
		ID:     id,
		Date:   date,
		Weight: weight,
		Steps:  steps,
		Water:  water,
		Sleep:  sleep,
	}
}

// On reports whether the entry falls on or after the given day. The
// comparison is by calendar date in since's location, so it holds for
// any UTC offset.
func (e *HealthEntry) On(since time.Time) bool {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return false
	}
	day := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(day)
}

func IsValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
