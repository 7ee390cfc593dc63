package dashboard

type Goal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Progress    int    `json:"progress"`
	Target      int    `json:"target"`
	Unit        string `json:"unit"`
}

func NewGoal(id, title, description, category string, target int, unit string) *Goal {
	return &Goal{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		Progress:    0,
		Target:      target,
		Unit:        unit,
	}
}

// Completed reports whether the goal has reached its target.
func (g *Goal) Completed() bool {
	return g.Target > 0 && g.Progress >= g.Target
}

// Percent returns progress as a whole percentage, capped at 100.
func (g *Goal) Percent() int {
	if g.Target <= 0 {
		return 0
	}
	p := g.Progress * 100 / g.Target
	if p > 100 {
		p = 100
	}
	return p
}
