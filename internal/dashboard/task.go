package dashboard

// Task priorities accepted by the API.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD
	Category    string `json:"category"`
}

func NewTask(id, title, description, priority, dueDate, category string) *Task {
	if priority == "" {
		priority = PriorityMedium
	}
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   false,
		Priority:    priority,
		DueDate:     dueDate,
		Category:    category,
	}
}

func (t *Task) MarkCompleted() {
	t.Completed = true
}

func IsValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
